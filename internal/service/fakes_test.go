package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/rumbos-envios/internal/model"
)

var errInjected = errors.New("injected failure")

// failures makes a named store operation fail, either forever (times <= 0)
// or for the next n calls.
type failures struct {
	mu    sync.Mutex
	rules map[string]int
}

func (f *failures) set(op string, times int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rules == nil {
		f.rules = make(map[string]int)
	}
	f.rules[op] = times
}

func (f *failures) check(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	times, ok := f.rules[op]
	if !ok {
		return nil
	}
	if times > 0 {
		if times == 1 {
			delete(f.rules, op)
		} else {
			f.rules[op] = times - 1
		}
	}
	return errInjected
}

type memTable[T any, F any] struct {
	name  string
	idOf  func(*T) *uuid.UUID
	fail  *failures
	rows  map[uuid.UUID]T
	order []uuid.UUID

	lastChanges map[string]any
	lastFilter  F
}

func newMemTable[T any, F any](name string, fail *failures, idOf func(*T) *uuid.UUID) *memTable[T, F] {
	return &memTable[T, F]{name: name, idOf: idOf, fail: fail, rows: make(map[uuid.UUID]T)}
}

func (m *memTable[T, F]) Create(_ context.Context, value *T) error {
	if err := m.fail.check(m.name + ".create"); err != nil {
		return err
	}
	id := m.idOf(value)
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	m.put(*value)
	return nil
}

func (m *memTable[T, F]) put(value T) {
	id := *m.idOf(&value)
	if _, exists := m.rows[id]; !exists {
		m.order = append(m.order, id)
	}
	m.rows[id] = value
}

func (m *memTable[T, F]) Get(_ context.Context, id uuid.UUID) (*T, error) {
	if err := m.fail.check(m.name + ".get"); err != nil {
		return nil, err
	}
	value, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &value, nil
}

func (m *memTable[T, F]) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*T, error) {
	if err := m.fail.check(m.name + ".update"); err != nil {
		return nil, err
	}
	m.lastChanges = changes
	return m.Get(ctx, id)
}

func (m *memTable[T, F]) Delete(_ context.Context, id uuid.UUID) error {
	if err := m.fail.check(m.name + ".delete"); err != nil {
		return err
	}
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.remove(id)
	return nil
}

func (m *memTable[T, F]) remove(id uuid.UUID) {
	delete(m.rows, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *memTable[T, F]) List(_ context.Context, filter F) (model.ListResult[T], error) {
	if err := m.fail.check(m.name + ".list"); err != nil {
		return model.ListResult[T]{}, err
	}
	m.lastFilter = filter
	rows := m.all()
	return model.ListResult[T]{Data: rows, Count: int64(len(rows))}, nil
}

func (m *memTable[T, F]) all() []T {
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out
}

// memDB is an in-memory persistence gateway shared by every fake store.
type memDB struct {
	fail failures

	companies    *companyStore
	clients      *clientStore
	drivers      *driverStore
	serviceTypes *serviceTypeStore
	packageTypes *packageTypeStore
	rates        *rateStore
	shipments    *shipmentStore
	runs         *runStore
	stops        *stopStore
}

func newMemDB() *memDB {
	db := &memDB{}
	db.companies = &companyStore{newMemTable[model.Company, model.ListQuery]("companies", &db.fail, func(v *model.Company) *uuid.UUID { return &v.ID })}
	db.clients = &clientStore{newMemTable[model.Client, model.ListQuery]("clients", &db.fail, func(v *model.Client) *uuid.UUID { return &v.ID })}
	db.drivers = &driverStore{memTable: newMemTable[model.Driver, model.DriverFilter]("drivers", &db.fail, func(v *model.Driver) *uuid.UUID { return &v.ID })}
	db.serviceTypes = &serviceTypeStore{newMemTable[model.ServiceType, model.CatalogFilter]("service_types", &db.fail, func(v *model.ServiceType) *uuid.UUID { return &v.ID })}
	db.packageTypes = &packageTypeStore{newMemTable[model.PackageType, model.CatalogFilter]("package_types", &db.fail, func(v *model.PackageType) *uuid.UUID { return &v.ID })}
	db.rates = &rateStore{newMemTable[model.Rate, model.RateFilter]("rates", &db.fail, func(v *model.Rate) *uuid.UUID { return &v.ID })}
	db.shipments = &shipmentStore{memTable: newMemTable[model.Shipment, model.ShipmentFilter]("shipments", &db.fail, func(v *model.Shipment) *uuid.UUID { return &v.ID })}
	db.stops = &stopStore{memTable: newMemTable[model.Stop, struct{}]("stops", &db.fail, func(v *model.Stop) *uuid.UUID { return &v.ID })}
	db.runs = &runStore{memTable: newMemTable[model.DeliveryRun, model.RunFilter]("runs", &db.fail, func(v *model.DeliveryRun) *uuid.UUID { return &v.ID }), stops: db.stops}
	return db
}

type companyStore struct {
	*memTable[model.Company, model.ListQuery]
}

func (s *companyStore) ListActive(context.Context) ([]model.Company, error) {
	if err := s.fail.check("companies.active"); err != nil {
		return nil, err
	}
	var out []model.Company
	for _, c := range s.all() {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

type clientStore struct {
	*memTable[model.Client, model.ListQuery]
}

func (s *clientStore) ListByCompany(_ context.Context, companyID uuid.UUID) ([]model.Client, error) {
	var out []model.Client
	for _, c := range s.all() {
		if c.CompanyID != nil && *c.CompanyID == companyID && c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *clientStore) ListActive(context.Context) ([]model.Client, error) {
	var out []model.Client
	for _, c := range s.all() {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

type driverStore struct {
	*memTable[model.Driver, model.DriverFilter]
}

func (s *driverStore) ListAvailable(context.Context) ([]model.Driver, error) {
	var out []model.Driver
	for _, d := range s.all() {
		if d.Active && d.Status == model.DriverAvailable {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *driverStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.DriverStatus) error {
	if err := s.fail.check("drivers.status"); err != nil {
		return err
	}
	d, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Status = status
	s.rows[id] = d
	return nil
}

type serviceTypeStore struct {
	*memTable[model.ServiceType, model.CatalogFilter]
}

func (s *serviceTypeStore) ListActive(context.Context) ([]model.ServiceType, error) {
	if err := s.fail.check("service_types.active"); err != nil {
		return nil, err
	}
	return s.all(), nil
}

type packageTypeStore struct {
	*memTable[model.PackageType, model.CatalogFilter]
}

func (s *packageTypeStore) ListActive(context.Context) ([]model.PackageType, error) {
	return s.all(), nil
}

type rateStore struct {
	*memTable[model.Rate, model.RateFilter]
}

func (s *rateStore) ListActiveByCalculator(_ context.Context, calculator model.CalculatorType) ([]model.Rate, error) {
	var out []model.Rate
	for _, r := range s.all() {
		if r.Active && r.CalculatorType == calculator {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinDistanceKm < out[j].MinDistanceKm })
	return out, nil
}

type shipmentStore struct {
	*memTable[model.Shipment, model.ShipmentFilter]
}

func (s *shipmentStore) ListPendingForSelect(_ context.Context, companyID *uuid.UUID, limit int) ([]model.Shipment, error) {
	var out []model.Shipment
	for _, sh := range s.all() {
		if sh.Status != model.StatusPendingPickup && sh.Status != model.StatusPendingConfirmation {
			continue
		}
		if companyID != nil && (sh.OriginCompanyID == nil || *sh.OriginCompanyID != *companyID) {
			continue
		}
		out = append(out, sh)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *shipmentStore) ListForMap(_ context.Context, filter model.MapFilter) ([]model.MapPoint, error) {
	var out []model.MapPoint
	for _, sh := range s.all() {
		if sh.DestinationLat == nil || sh.DestinationLng == nil {
			continue
		}
		if filter.Kind == model.MapFilterRun && (sh.RunID == nil || *sh.RunID != filter.RunID) {
			continue
		}
		out = append(out, model.MapPoint{ID: sh.ID, TrackingNumber: sh.TrackingNumber, Lat: *sh.DestinationLat, Lng: *sh.DestinationLng, Status: sh.Status})
	}
	return out, nil
}

func (s *shipmentStore) ListByIDs(_ context.Context, ids []uuid.UUID) ([]model.Shipment, error) {
	var out []model.Shipment
	for _, id := range ids {
		if sh, ok := s.rows[id]; ok {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (s *shipmentStore) DeleteMany(_ context.Context, ids []uuid.UUID) error {
	if err := s.fail.check("shipments.deleteMany"); err != nil {
		return err
	}
	for _, id := range ids {
		s.remove(id)
	}
	return nil
}

func (s *shipmentStore) AssignToRun(_ context.Context, ids []uuid.UUID, runID, driverID uuid.UUID, status model.ShipmentStatus) error {
	if err := s.fail.check("shipments.assign"); err != nil {
		return err
	}
	for _, id := range ids {
		sh, ok := s.rows[id]
		if !ok {
			continue
		}
		run, driver := runID, driverID
		sh.RunID, sh.AssignedDriverID, sh.Status = &run, &driver, status
		s.rows[id] = sh
	}
	return nil
}

func (s *shipmentStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.ShipmentStatus, deliveredAt *time.Time) error {
	if err := s.fail.check("shipments.status"); err != nil {
		return err
	}
	sh, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sh.Status = status
	if deliveredAt != nil {
		sh.DeliveredAt = deliveredAt
	}
	s.rows[id] = sh
	return nil
}

func (s *shipmentStore) CountByStatus(context.Context) (map[model.ShipmentStatus]int64, error) {
	out := make(map[model.ShipmentStatus]int64)
	for _, sh := range s.all() {
		out[sh.Status]++
	}
	return out, nil
}

type runStore struct {
	*memTable[model.DeliveryRun, model.RunFilter]
	stops *stopStore
}

// Delete cascades to the run's stops like the paradas_reparto foreign key.
func (s *runStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.memTable.Delete(ctx, id); err != nil {
		return err
	}
	for _, stop := range s.stops.all() {
		if stop.RunID == id {
			s.stops.remove(stop.ID)
		}
	}
	return nil
}

func (s *runStore) GetWithStops(ctx context.Context, id uuid.UUID) (*model.DeliveryRun, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Stops, _ = s.stops.ListByRun(ctx, id)
	return run, nil
}

func (s *runStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.ShipmentStatus) error {
	if err := s.fail.check("runs.status"); err != nil {
		return err
	}
	run, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	run.Status = status
	s.rows[id] = run
	return nil
}

type stopStore struct {
	*memTable[model.Stop, struct{}]
}

func (s *stopStore) CreateBatch(_ context.Context, stops []model.Stop) error {
	if err := s.fail.check("stops.createBatch"); err != nil {
		return err
	}
	for _, stop := range stops {
		if stop.ID == uuid.Nil {
			stop.ID = uuid.New()
		}
		s.put(stop)
	}
	return nil
}

func (s *stopStore) ListByRun(_ context.Context, runID uuid.UUID) ([]model.Stop, error) {
	var out []model.Stop
	for _, stop := range s.all() {
		if stop.RunID == runID {
			out = append(out, stop)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (s *stopStore) UpdateSequence(_ context.Context, id uuid.UUID, sequence int) error {
	if err := s.fail.check("stops.sequence"); err != nil {
		return err
	}
	stop, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stop.Sequence = sequence
	s.rows[id] = stop
	return nil
}

func (s *stopStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.ShipmentStatus, _ time.Time) error {
	if err := s.fail.check("stops.status"); err != nil {
		return err
	}
	stop, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stop.Status = status
	s.rows[id] = stop
	return nil
}

type seqTracking struct {
	mu sync.Mutex
	n  int
}

func (t *seqTracking) Next() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n++
	return "RUM" + time.Unix(int64(t.n), 0).UTC().Format("150405") + "TEST", nil
}

type fakeExporter struct {
	rows []model.Shipment
}

func (e *fakeExporter) Shipments(rows []model.Shipment) ([]byte, error) {
	e.rows = rows
	return []byte("xlsx"), nil
}

type fakeSheets struct{}

func (fakeSheets) RunSheet(run model.DeliveryRun) ([]byte, error) {
	return []byte("pdf:" + run.ID.String()), nil
}
