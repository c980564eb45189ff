package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: un almacén compartido que implementa los puertos de
// repositorio y un TxRunner que imita la semántica de una transacción de BD
// (snapshot antes de fn, restore si fn falla). Las transacciones se serializan
// con un mutex, igual que lo harían los bloqueos de fila en el motor real.
// ──────────────────────────────────────────────────────────────────────────────

type pair struct{ partID, locationID string }

type memStore struct {
	mu        sync.Mutex
	parts     map[string]*entity.Part
	locations map[string]*entity.Location
	orders    map[string]*entity.WorkOrder
	levels    map[pair]*entity.InventoryLevel
	txns      []*entity.InventoryTransaction
	woParts   []*entity.WorkOrderPart
}

func newMemStore() *memStore {
	return &memStore{
		parts:     make(map[string]*entity.Part),
		locations: make(map[string]*entity.Location),
		orders:    make(map[string]*entity.WorkOrder),
		levels:    make(map[pair]*entity.InventoryLevel),
	}
}

func (s *memStore) addPart(reorderPoint int64, cost string) *entity.Part {
	c, _ := decimal.NewFromString(cost)
	p := &entity.Part{
		ID:           uuid.New().String(),
		SKU:          "SKU-" + uuid.New().String()[:8],
		Name:         "Repuesto de prueba",
		ReorderPoint: reorderPoint,
		UnitCost:     c,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.parts[p.ID] = p
	return p
}

func (s *memStore) addLocation(name string) *entity.Location {
	l := &entity.Location{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	s.locations[l.ID] = l
	return l
}

func (s *memStore) addWorkOrder(title string) *entity.WorkOrder {
	wo := &entity.WorkOrder{ID: uuid.New().String(), Title: title, Status: entity.WorkOrderStatusOpen, CreatedAt: time.Now()}
	s.orders[wo.ID] = wo
	return wo
}

func (s *memStore) balance(partID, locationID string) int64 {
	if lvl, ok := s.levels[pair{partID, locationID}]; ok {
		return lvl.Quantity
	}
	return 0
}

// ledgerSum reconstruye el saldo de un par desde el ledger, incluyendo el lado
// destino de los traslados. Es el mismo cálculo que hace la reconciliación.
func (s *memStore) ledgerSum(partID, locationID string) int64 {
	var sum int64
	for _, t := range s.txns {
		if t.PartID != partID {
			continue
		}
		if t.LocationID == locationID {
			sum += t.SignedQuantity()
		}
		if t.ToLocationID != nil && *t.ToLocationID == locationID {
			sum += t.Quantity
		}
	}
	return sum
}

// snapshot copia profunda del estado mutable por las transacciones.
func (s *memStore) snapshot() (map[pair]*entity.InventoryLevel, []*entity.InventoryTransaction, []*entity.WorkOrderPart) {
	levels := make(map[pair]*entity.InventoryLevel, len(s.levels))
	for k, v := range s.levels {
		cp := *v
		levels[k] = &cp
	}
	txns := make([]*entity.InventoryTransaction, len(s.txns))
	copy(txns, s.txns)
	woParts := make([]*entity.WorkOrderPart, len(s.woParts))
	copy(woParts, s.woParts)
	return levels, txns, woParts
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.InventoryLevelRepository,
	txnRepo repository.InventoryTransactionRepository,
	woPartRepo repository.WorkOrderPartRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	levels, txns, woParts := r.store.snapshot()
	err := fn(&memLevelRepo{store: r.store}, &memTxnRepo{store: r.store}, &memWoPartRepo{store: r.store})
	if err != nil {
		// Rollback: la operación rechazada no deja rastro.
		r.store.levels = levels
		r.store.txns = txns
		r.store.woParts = woParts
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memLevelRepo struct{ store *memStore }

var _ repository.InventoryLevelRepository = (*memLevelRepo)(nil)

func (r *memLevelRepo) Get(_ context.Context, partID, locationID string) (*entity.InventoryLevel, error) {
	if lvl, ok := r.store.levels[pair{partID, locationID}]; ok {
		cp := *lvl
		return &cp, nil
	}
	return nil, nil
}

func (r *memLevelRepo) CreateIfAbsent(_ context.Context, partID, locationID string) error {
	k := pair{partID, locationID}
	if _, ok := r.store.levels[k]; !ok {
		r.store.levels[k] = &entity.InventoryLevel{PartID: partID, LocationID: locationID, UpdatedAt: time.Now()}
	}
	return nil
}

func (r *memLevelRepo) GetForUpdate(ctx context.Context, partID, locationID string) (*entity.InventoryLevel, error) {
	return r.Get(ctx, partID, locationID)
}

func (r *memLevelRepo) SetQuantity(_ context.Context, partID, locationID string, quantity int64) error {
	k := pair{partID, locationID}
	lvl, ok := r.store.levels[k]
	if !ok {
		lvl = &entity.InventoryLevel{PartID: partID, LocationID: locationID}
		r.store.levels[k] = lvl
	}
	lvl.Quantity = quantity
	lvl.UpdatedAt = time.Now()
	return nil
}

func (r *memLevelRepo) ListByLocation(_ context.Context, locationID string, limit, offset int) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	for _, lvl := range r.store.levels {
		if lvl.LocationID == locationID {
			cp := *lvl
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartID < out[j].PartID })
	return out, nil
}

func (r *memLevelRepo) ListLowStock(_ context.Context) ([]repository.LowStockRow, error) {
	var rows []repository.LowStockRow
	for _, lvl := range r.store.levels {
		part, ok := r.store.parts[lvl.PartID]
		if !ok || !part.Active {
			continue
		}
		if lvl.Quantity > part.ReorderPoint {
			continue
		}
		loc := r.store.locations[lvl.LocationID]
		rows = append(rows, repository.LowStockRow{
			PartID:       part.ID,
			SKU:          part.SKU,
			PartName:     part.Name,
			LocationID:   lvl.LocationID,
			LocationName: loc.Name,
			Quantity:     lvl.Quantity,
			ReorderPoint: part.ReorderPoint,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Quantity != rows[j].Quantity {
			return rows[i].Quantity < rows[j].Quantity
		}
		return rows[i].SKU < rows[j].SKU
	})
	return rows, nil
}

func (r *memLevelRepo) CountLowStock(ctx context.Context) (int64, error) {
	rows, err := r.ListLowStock(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (r *memLevelRepo) ListAll(_ context.Context) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	for _, lvl := range r.store.levels {
		cp := *lvl
		out = append(out, &cp)
	}
	return out, nil
}

type memTxnRepo struct{ store *memStore }

var _ repository.InventoryTransactionRepository = (*memTxnRepo)(nil)

func (r *memTxnRepo) Create(_ context.Context, txn *entity.InventoryTransaction) error {
	cp := *txn
	r.store.txns = append(r.store.txns, &cp)
	return nil
}

func (r *memTxnRepo) GetByID(_ context.Context, id string) (*entity.InventoryTransaction, error) {
	for _, t := range r.store.txns {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTxnRepo) List(_ context.Context, filter repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, t := range r.store.txns {
		if filter.PartID != "" && t.PartID != filter.PartID {
			continue
		}
		if filter.LocationID != "" && t.LocationID != filter.LocationID &&
			(t.ToLocationID == nil || *t.ToLocationID != filter.LocationID) {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.WorkOrderID != "" && (t.WorkOrderID == nil || *t.WorkOrderID != filter.WorkOrderID) {
			continue
		}
		if filter.From != nil && t.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.CreatedAt.After(*filter.To) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	// Más reciente primero, como el adaptador real.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memTxnRepo) SumByPair(_ context.Context) ([]repository.PairBalance, error) {
	sums := make(map[pair]int64)
	for _, t := range r.store.txns {
		sums[pair{t.PartID, t.LocationID}] += t.SignedQuantity()
		if t.ToLocationID != nil {
			sums[pair{t.PartID, *t.ToLocationID}] += t.Quantity
		}
	}
	out := make([]repository.PairBalance, 0, len(sums))
	for k, q := range sums {
		out = append(out, repository.PairBalance{PartID: k.partID, LocationID: k.locationID, Quantity: q})
	}
	return out, nil
}

type memWoPartRepo struct{ store *memStore }

var _ repository.WorkOrderPartRepository = (*memWoPartRepo)(nil)

func (r *memWoPartRepo) Create(_ context.Context, line *entity.WorkOrderPart) error {
	cp := *line
	r.store.woParts = append(r.store.woParts, &cp)
	return nil
}

func (r *memWoPartRepo) ListByWorkOrder(_ context.Context, workOrderID string) ([]*entity.WorkOrderPart, error) {
	var out []*entity.WorkOrderPart
	for _, l := range r.store.woParts {
		if l.WorkOrderID == workOrderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memPartRepo struct{ store *memStore }

var _ repository.PartRepository = (*memPartRepo)(nil)

func (r *memPartRepo) Create(_ context.Context, part *entity.Part) error {
	cp := *part
	r.store.parts[part.ID] = &cp
	return nil
}

func (r *memPartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	if p, ok := r.store.parts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memPartRepo) GetBySKU(_ context.Context, sku string) (*entity.Part, error) {
	for _, p := range r.store.parts {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPartRepo) List(_ context.Context, limit, offset int) ([]*entity.Part, error) {
	var out []*entity.Part
	for _, p := range r.store.parts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (r *memPartRepo) Update(_ context.Context, part *entity.Part) error {
	cp := *part
	r.store.parts[part.ID] = &cp
	return nil
}

type memLocationRepo struct{ store *memStore }

var _ repository.LocationRepository = (*memLocationRepo)(nil)

func (r *memLocationRepo) Create(_ context.Context, loc *entity.Location) error {
	cp := *loc
	r.store.locations[loc.ID] = &cp
	return nil
}

func (r *memLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	if l, ok := r.store.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *memLocationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.store.locations {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memWorkOrderRepo struct{ store *memStore }

var _ repository.WorkOrderRepository = (*memWorkOrderRepo)(nil)

func (r *memWorkOrderRepo) Create(_ context.Context, wo *entity.WorkOrder) error {
	cp := *wo
	r.store.orders[wo.ID] = &cp
	return nil
}

func (r *memWorkOrderRepo) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	if wo, ok := r.store.orders[id]; ok {
		cp := *wo
		return &cp, nil
	}
	return nil, nil
}

// capturePublisher acumula los eventos publicados, para verificar el post-commit.
type capturePublisher struct {
	mu     sync.Mutex
	events []inventory.LedgerEvent
}

var _ inventory.EventPublisher = (*capturePublisher)(nil)

func (p *capturePublisher) PublishLedgerEvent(_ context.Context, ev inventory.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

// testEnv cablea los casos de uso contra el almacén en memoria.
type testEnv struct {
	store     *memStore
	events    *capturePublisher
	apply     *inventory.ApplyTransactionUseCase
	consume   *inventory.ConsumePartUseCase
	queries   *inventory.QueryUseCase
	reorder   *inventory.ReorderMonitorUseCase
	reconcile *inventory.ReconciliationUseCase
}

func newTestEnv() *testEnv {
	store := newMemStore()
	events := &capturePublisher{}
	runner := &memTxRunner{store: store}
	partRepo := &memPartRepo{store: store}
	locationRepo := &memLocationRepo{store: store}
	workOrderRepo := &memWorkOrderRepo{store: store}
	levelRepo := &memLevelRepo{store: store}
	txnRepo := &memTxnRepo{store: store}
	woPartRepo := &memWoPartRepo{store: store}

	return &testEnv{
		store:     store,
		events:    events,
		apply:     inventory.NewApplyTransactionUseCase(runner, partRepo, locationRepo, events),
		consume:   inventory.NewConsumePartUseCase(runner, partRepo, locationRepo, workOrderRepo, events),
		queries:   inventory.NewQueryUseCase(levelRepo, txnRepo, woPartRepo, workOrderRepo, locationRepo),
		reorder:   inventory.NewReorderMonitorUseCase(levelRepo),
		reconcile: inventory.NewReconciliationUseCase(levelRepo, txnRepo),
	}
}
