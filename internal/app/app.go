package app

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/phenrril/repairshop/internal/adapters/httpserver"
	"github.com/phenrril/repairshop/internal/adapters/repo/postgres"
	"github.com/phenrril/repairshop/internal/adapters/storage/localfs"
	"github.com/phenrril/repairshop/internal/domain"
	"github.com/phenrril/repairshop/internal/usecase"
)

type App struct {
	DB         *gorm.DB
	AuthUC     *usecase.AuthUC
	CustomerUC *usecase.CustomerUC
	JobUC      *usecase.JobUC
	ProductUC  *usecase.ProductUC
	BillingUC  *usecase.BillingUC

	sessionKey string
	uploadDir  string
	oauthCfg   *oauth2.Config
}

func NewApp(db *gorm.DB) (*App, error) {
	custRepo := postgres.NewCustomerRepo(db)
	jobRepo := postgres.NewRepairJobRepo(db)
	prodRepo := postgres.NewProductRepo(db)
	saleRepo := postgres.NewSaleRepo(db)
	staffRepo := postgres.NewStaffRepo(db)

	uploadDir := os.Getenv("STORAGE_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	_ = os.MkdirAll(uploadDir, 0755)
	storage := localfs.New(uploadDir)

	gstRate := 0.18
	if raw := os.Getenv("GST_RATE"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v < 1 {
			gstRate = v
		} else {
			zlog.Warn().Str("value", raw).Msg("ignoring invalid GST_RATE")
		}
	}

	sessionKey := os.Getenv("SESSION_KEY")
	if sessionKey == "" {
		sessionKey = os.Getenv("SECRET_KEY")
	}
	if sessionKey == "" {
		sessionKey = "dev-session-secret"
		zlog.Warn().Msg("SESSION_KEY not set, using dev default")
	}

	var oauthCfg *oauth2.Config
	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	app := &App{DB: db, sessionKey: sessionKey, uploadDir: uploadDir, oauthCfg: oauthCfg}
	app.AuthUC = &usecase.AuthUC{Staff: staffRepo}
	app.CustomerUC = &usecase.CustomerUC{Customers: custRepo, Jobs: jobRepo}
	app.JobUC = &usecase.JobUC{Jobs: jobRepo, Customers: app.CustomerUC, Storage: storage}
	app.ProductUC = &usecase.ProductUC{Products: prodRepo}
	app.BillingUC = &usecase.BillingUC{Sales: saleRepo, Jobs: jobRepo, Products: prodRepo, GSTRate: gstRate}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Config{
		Auth:       a.AuthUC,
		Customers:  a.CustomerUC,
		Jobs:       a.JobUC,
		Products:   a.ProductUC,
		Billing:    a.BillingUC,
		OAuth:      a.oauthCfg,
		SessionKey: a.sessionKey,
		UploadDir:  a.uploadDir,
	})
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Customer{}, &domain.RepairJob{}, &domain.Product{},
		&domain.Sale{}, &domain.SaleItem{}, &domain.Staff{},
	); err != nil {
		return err
	}

	if err := a.DB.Exec("CREATE SEQUENCE IF NOT EXISTS invoice_number_seq START 1").Error; err != nil {
		return err
	}
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(date)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_repair_jobs_created_date ON repair_jobs(created_date)").Error

	if err := a.seedStaff(); err != nil {
		return err
	}
	a.seedProducts()
	return nil
}

// seedStaff bootstraps the first account from env so a fresh deployment can
// be signed into; accounts are never created through the public surface.
func (a *App) seedStaff() error {
	staffRepo := postgres.NewStaffRepo(a.DB)
	n, err := staffRepo.Count(context.Background())
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		zlog.Warn().Msg("no staff accounts and ADMIN_EMAIL/ADMIN_PASSWORD unset; login will be impossible")
		return nil
	}
	if _, err := a.AuthUC.Register(context.Background(), email, "Administrator", pass); err != nil {
		return err
	}
	zlog.Info().Str("email", email).Msg("seeded admin staff account")
	return nil
}

func (a *App) seedProducts() {
	var count int64
	if err := a.DB.Model(&domain.Product{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	five := 5
	ten := 10
	three := 3
	prods := []domain.Product{
		{ID: uuid.New(), Name: "Screen replacement", Category: domain.CategoryService, DefaultPrice: 2500, CurrentPrice: 2500},
		{ID: uuid.New(), Name: "Battery replacement", Category: domain.CategoryService, DefaultPrice: 1200, CurrentPrice: 1200},
		{ID: uuid.New(), Name: "Water damage cleanup", Category: domain.CategoryService, DefaultPrice: 1800, CurrentPrice: 1800},
		{ID: uuid.New(), Name: "Tempered glass", Category: domain.CategoryAccessory, DefaultPrice: 300, CurrentPrice: 250, StockQuantity: &ten, LowStockThreshold: &five},
		{ID: uuid.New(), Name: "USB-C cable", Category: domain.CategoryAccessory, DefaultPrice: 350, CurrentPrice: 350, StockQuantity: &ten, LowStockThreshold: &three},
		{ID: uuid.New(), Name: "Phone case", Category: domain.CategoryAccessory, DefaultPrice: 500, CurrentPrice: 500, StockQuantity: &five, LowStockThreshold: &three},
	}
	for _, p := range prods {
		a.DB.Create(&p)
	}
}
