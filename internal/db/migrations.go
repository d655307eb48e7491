package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'estado_envio') THEN
			CREATE TYPE estado_envio AS ENUM (
				'pendiente_confirmacion', 'pendiente_recoleccion', 'en_recoleccion', 'recolectado',
				'en_camino', 'llegando_destino', 'entregado', 'no_entregado',
				'devuelto_origen', 'cancelado', 'fallido'
			);
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'estado_repartidor') THEN
			CREATE TYPE estado_repartidor AS ENUM ('disponible', 'en_ruta', 'ocupado_otro', 'inactivo', 'en_mantenimiento');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'tipo_vehiculo') THEN
			CREATE TYPE tipo_vehiculo AS ENUM ('moto', 'auto', 'bicicleta', 'utilitario_pequeno', 'utilitario_grande');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'tipo_parada') THEN
			CREATE TYPE tipo_parada AS ENUM ('recoleccion_empresa', 'entrega_cliente', 'punto_logistico', 'devolucion_origen');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'tipo_calculadora_servicio') THEN
			CREATE TYPE tipo_calculadora_servicio AS ENUM ('express_moto', 'express_auto', 'programado_24h', 'lowcost_72h', 'personalizado');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS empresas (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		nombre VARCHAR(255) NOT NULL,
		razon_social VARCHAR(255),
		rfc VARCHAR(13),
		direccion_fiscal TEXT,
		latitud DOUBLE PRECISION,
		longitud DOUBLE PRECISION,
		telefono_contacto VARCHAR(32),
		email_contacto VARCHAR(255),
		nombre_responsable VARCHAR(255),
		sitio_web TEXT,
		logo_url TEXT,
		activa BOOLEAN NOT NULL DEFAULT TRUE,
		notas TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS clientes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		nombre_completo VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		telefono VARCHAR(32),
		direccion_predeterminada TEXT,
		latitud_predeterminada DOUBLE PRECISION,
		longitud_predeterminada DOUBLE PRECISION,
		empresa_id UUID REFERENCES empresas(id) ON DELETE SET NULL,
		fecha_nacimiento DATE,
		notas_internas TEXT,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS repartidores (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID,
		nombre_completo VARCHAR(255) NOT NULL,
		telefono VARCHAR(32) NOT NULL,
		email VARCHAR(255),
		fecha_nacimiento DATE,
		direccion TEXT,
		tipo_vehiculo tipo_vehiculo,
		marca_vehiculo VARCHAR(64),
		modelo_vehiculo VARCHAR(64),
		anio_vehiculo INTEGER,
		placa_vehiculo VARCHAR(16),
		numero_licencia VARCHAR(64),
		fecha_vencimiento_licencia DATE,
		estatus estado_repartidor NOT NULL DEFAULT 'inactivo',
		foto_perfil_url TEXT,
		promedio_calificacion NUMERIC(3,2),
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS tipos_paquete (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		nombre VARCHAR(128) NOT NULL,
		descripcion TEXT,
		peso_max_kg NUMERIC(10,2),
		largo_max_cm INTEGER,
		ancho_max_cm INTEGER,
		alto_max_cm INTEGER,
		requiere_refrigeracion BOOLEAN NOT NULL DEFAULT FALSE,
		es_fragil BOOLEAN NOT NULL DEFAULT FALSE,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS tipos_servicio (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		nombre VARCHAR(128) NOT NULL,
		descripcion TEXT,
		tiempo_entrega_estimado_horas_min INTEGER,
		tiempo_entrega_estimado_horas_max INTEGER,
		disponible_fin_semana BOOLEAN NOT NULL DEFAULT FALSE,
		disponible_feriados BOOLEAN NOT NULL DEFAULT FALSE,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS tarifas_distancia_calculadora (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		tipo_servicio_id UUID REFERENCES tipos_servicio(id) ON DELETE SET NULL,
		tipo_calculadora_servicio tipo_calculadora_servicio NOT NULL,
		zona_geo VARCHAR(128),
		distancia_min_km NUMERIC(10,2) NOT NULL DEFAULT 0,
		distancia_max_km NUMERIC(10,2) NOT NULL,
		tarifa_base NUMERIC(12,2) NOT NULL DEFAULT 0,
		tarifa_km_adicional NUMERIC(12,2),
		peso_max_kg_adicional NUMERIC(10,2),
		tarifa_kg_adicional NUMERIC(12,2),
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_tarifa_banda CHECK (distancia_min_km < distancia_max_km)
	);`,
	`CREATE TABLE IF NOT EXISTS repartos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		nombre_reparto VARCHAR(255),
		repartidor_id UUID NOT NULL REFERENCES repartidores(id),
		fecha_reparto DATE NOT NULL,
		estatus estado_envio NOT NULL DEFAULT 'pendiente_recoleccion',
		hora_inicio_estimada VARCHAR(5),
		hora_fin_estimada VARCHAR(5),
		distancia_total_estimada_km NUMERIC(10,2),
		vehiculo_utilizado VARCHAR(128),
		notas TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS envios (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		cliente_id UUID NOT NULL REFERENCES clientes(id),
		empresa_origen_id UUID REFERENCES empresas(id) ON DELETE SET NULL,
		direccion_origen TEXT NOT NULL,
		referencia_origen TEXT,
		latitud_origen DOUBLE PRECISION,
		longitud_origen DOUBLE PRECISION,
		contacto_origen_nombre VARCHAR(255) NOT NULL,
		contacto_origen_telefono VARCHAR(32) NOT NULL,
		direccion_destino TEXT NOT NULL,
		referencia_destino TEXT,
		latitud_destino DOUBLE PRECISION,
		longitud_destino DOUBLE PRECISION,
		contacto_destino_nombre VARCHAR(255),
		contacto_destino_telefono VARCHAR(32),
		tipo_paquete_id UUID REFERENCES tipos_paquete(id) ON DELETE SET NULL,
		tipo_servicio_id UUID NOT NULL REFERENCES tipos_servicio(id),
		descripcion_paquete TEXT,
		cantidad_paquetes INTEGER NOT NULL DEFAULT 1,
		peso_total_estimado_kg NUMERIC(10,2),
		dimensiones_paquete_cm VARCHAR(64),
		instrucciones_especiales TEXT,
		valor_declarado NUMERIC(12,2),
		requiere_cobro_destino BOOLEAN NOT NULL DEFAULT FALSE,
		monto_cobro_destino NUMERIC(12,2),
		fecha_solicitud TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		fecha_recoleccion_programada_inicio TIMESTAMPTZ,
		fecha_recoleccion_programada_fin TIMESTAMPTZ,
		fecha_entrega_estimada_inicio TIMESTAMPTZ,
		fecha_entrega_estimada_fin TIMESTAMPTZ,
		fecha_entrega_real TIMESTAMPTZ,
		estatus estado_envio NOT NULL DEFAULT 'pendiente_confirmacion',
		repartidor_asignado_id UUID REFERENCES repartidores(id) ON DELETE SET NULL,
		reparto_id UUID REFERENCES repartos(id) ON DELETE SET NULL,
		tracking_number VARCHAR(32) NOT NULL,
		costo_envio NUMERIC(12,2),
		costo_seguro NUMERIC(12,2),
		costo_adicional NUMERIC(12,2),
		costo_total NUMERIC(12,2),
		notas_internas TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS paradas_reparto (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		reparto_id UUID NOT NULL REFERENCES repartos(id) ON DELETE CASCADE,
		envio_id UUID REFERENCES envios(id) ON DELETE SET NULL,
		secuencia_parada INTEGER NOT NULL CHECK (secuencia_parada > 0),
		tipo_parada tipo_parada NOT NULL,
		direccion_parada TEXT NOT NULL,
		referencia_parada TEXT,
		latitud_parada DOUBLE PRECISION,
		longitud_parada DOUBLE PRECISION,
		nombre_contacto_parada VARCHAR(255),
		telefono_contacto_parada VARCHAR(32),
		notas_parada TEXT,
		hora_estimada_llegada VARCHAR(5),
		hora_real_llegada TIMESTAMPTZ,
		hora_real_salida TIMESTAMPTZ,
		estatus_parada estado_envio NOT NULL DEFAULT 'pendiente_recoleccion',
		foto_entrega_url TEXT,
		firma_receptor_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_envios_tracking_number ON envios (tracking_number);`,
	`CREATE INDEX IF NOT EXISTS idx_clientes_empresa_id ON clientes (empresa_id) WHERE empresa_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_envios_cliente_id ON envios (cliente_id);`,
	`CREATE INDEX IF NOT EXISTS idx_envios_estatus ON envios (estatus);`,
	`CREATE INDEX IF NOT EXISTS idx_envios_reparto_id ON envios (reparto_id) WHERE reparto_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_envios_fecha_solicitud ON envios (fecha_solicitud DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_repartos_repartidor_fecha ON repartos (repartidor_id, fecha_reparto);`,
	`CREATE INDEX IF NOT EXISTS idx_paradas_reparto_secuencia ON paradas_reparto (reparto_id, secuencia_parada);`,
	`CREATE INDEX IF NOT EXISTS idx_tarifas_calculadora ON tarifas_distancia_calculadora (tipo_calculadora_servicio, distancia_min_km);`,
}

// Migrate applies every statement in order. Each one is idempotent.
func Migrate(ctx context.Context, database *gorm.DB, log zerolog.Logger) error {
	for i, stmt := range migrationStatements {
		if err := database.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	log.Info().Int("statements", len(migrationStatements)).Msg("migrations applied")
	return nil
}
