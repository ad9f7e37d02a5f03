package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/repairshop/internal/domain"
)

// In-memory stand-ins for the postgres adapters, enough to drive the
// usecases in tests.

type memStore struct {
	mu          sync.Mutex
	customers   map[uuid.UUID]domain.Customer
	jobs        map[uuid.UUID]domain.RepairJob
	products    map[uuid.UUID]domain.Product
	sales       map[uuid.UUID]domain.Sale
	salesByJob  map[uuid.UUID]uuid.UUID
	staff       map[string]domain.Staff
	nextInvoice int64
}

func newMemStore() *memStore {
	return &memStore{
		customers:  map[uuid.UUID]domain.Customer{},
		jobs:       map[uuid.UUID]domain.RepairJob{},
		products:   map[uuid.UUID]domain.Product{},
		sales:      map[uuid.UUID]domain.Sale{},
		salesByJob: map[uuid.UUID]uuid.UUID{},
		staff:      map[string]domain.Staff{},
	}
}

type memCustomers struct{ s *memStore }

func (m memCustomers) FindByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, c := range m.s.customers {
		if c.Phone == phone {
			cp := c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memCustomers) FindByName(_ context.Context, name string) (*domain.Customer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, c := range m.s.customers {
		if c.Name == name {
			cp := c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memCustomers) Create(_ context.Context, c *domain.Customer) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, e := range m.s.customers {
		if e.Phone == c.Phone {
			return domain.ErrDuplicatePhone
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedDate.IsZero() {
		c.CreatedDate = time.Now()
	}
	m.s.customers[c.ID] = *c
	return nil
}

type memJobs struct{ s *memStore }

func (m memJobs) Create(_ context.Context, j *domain.RepairJob) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedDate.IsZero() {
		j.CreatedDate = time.Now()
	}
	m.s.jobs[j.ID] = *j
	return nil
}

func (m memJobs) FindByID(_ context.Context, id uuid.UUID) (*domain.RepairJob, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	j, ok := m.s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := j
	return &cp, nil
}

func (m memJobs) List(_ context.Context, f domain.JobFilter) ([]domain.RepairJob, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []domain.RepairJob{}
	for _, j := range m.s.jobs {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m memJobs) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]domain.RepairJob, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []domain.RepairJob{}
	for _, j := range m.s.jobs {
		if j.CustomerID == customerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m memJobs) UpdateStatus(_ context.Context, id uuid.UUID, status domain.JobStatus, completedDate *time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	j, ok := m.s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Status = status
	j.CompletedDate = completedDate
	m.s.jobs[id] = j
	return nil
}

func (m memJobs) AppendPhotos(_ context.Context, id uuid.UUID, urls []string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	j, ok := m.s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Photos = append(j.Photos, urls...)
	m.s.jobs[id] = j
	return nil
}

type memProducts struct{ s *memStore }

func (m memProducts) List(_ context.Context) ([]domain.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []domain.Product{}
	for _, p := range m.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (m memProducts) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (m memProducts) Save(_ context.Context, p *domain.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.s.products[p.ID] = *p
	return nil
}

type memSales struct{ s *memStore }

func (m memSales) CreateForJob(_ context.Context, sale *domain.Sale) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, exists := m.s.salesByJob[sale.RepairJobID]; exists {
		return domain.ErrAlreadyBilled
	}
	job, ok := m.s.jobs[sale.RepairJobID]
	if !ok {
		return domain.ErrNotFound
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.Date.IsZero() {
		sale.Date = time.Now()
	}
	m.s.nextInvoice++
	sale.InvoiceNumber = fmt.Sprintf("INV-%06d", m.s.nextInvoice)
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
		sale.Items[i].Position = i
	}
	for _, it := range sale.Items {
		if it.IsService || it.ProductID == nil {
			continue
		}
		p, ok := m.s.products[*it.ProductID]
		if ok && p.StockQuantity != nil {
			q := *p.StockQuantity - it.Quantity
			p.StockQuantity = &q
			m.s.products[p.ID] = p
		}
	}
	now := time.Now()
	job.Status = domain.JobStatusCompleted
	job.CompletedDate = &now
	job.FinalCost = &sale.TotalAmount
	m.s.jobs[job.ID] = job
	m.s.sales[sale.ID] = *sale
	m.s.salesByJob[sale.RepairJobID] = sale.ID
	return nil
}

func (m memSales) FindByID(_ context.Context, id uuid.UUID) (*domain.Sale, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	s, ok := m.s.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m memSales) FindByJob(_ context.Context, jobID uuid.UUID) (*domain.Sale, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	id, ok := m.s.salesByJob[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s := m.s.sales[id]
	return &s, nil
}

type memStaff struct{ s *memStore }

func (m memStaff) FindByEmail(_ context.Context, email string) (*domain.Staff, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	st, ok := m.s.staff[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := st
	return &cp, nil
}

func (m memStaff) Save(_ context.Context, st *domain.Staff) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	m.s.staff[st.Email] = *st
	return nil
}

func (m memStaff) Count(_ context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.s.staff)), nil
}

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{files: map[string][]byte{}} }

func (m *memStorage) Save(path string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = buf.Bytes()
	return "/uploads/" + path, nil
}

var (
	_ domain.CustomerRepo  = memCustomers{}
	_ domain.RepairJobRepo = memJobs{}
	_ domain.ProductRepo   = memProducts{}
	_ domain.SaleRepo      = memSales{}
	_ domain.StaffRepo     = memStaff{}
	_ domain.FileStorage   = (*memStorage)(nil)
)
