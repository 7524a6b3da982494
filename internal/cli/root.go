package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/storeldb/storeapi/internal/core/service"
	"github.com/storeldb/storeapi/internal/infrastructure/sqlstore"
	"github.com/storeldb/storeapi/internal/logging"
	"github.com/storeldb/storeapi/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storeapi",
	Short: "Store API - clients, products, orders and sales reports",
	Long: `Store API is a REST service over a relational store of clients,
products, orders and order details.

It provides:
- CRUD endpoints for clients, products and orders
- Reporting queries (top clients, sales by client, average price)
- Spreadsheet exports of sales and order details
- Schema migration and demo data seeding`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to configure logging: %w", err)
		}
		slog.SetDefault(logger)

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
}

// Services holds all initialized services
type Services struct {
	DB             *sqlstore.DB
	Store          *sqlstore.Store
	AuthService    *service.AuthService
	ClientService  *service.ClientService
	ProductService *service.ProductService
	OrderService   *service.OrderService
	ExcelService   *service.ExcelService
}

// initServices opens the database and wires every service to it
func initServices(ctx context.Context) (*Services, error) {
	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		AutoMigrate:  cfg.Database.AutoMigrate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logger.Debug("database opened", "driver", cfg.Database.Driver, "auto_migrate", cfg.Database.AutoMigrate)

	store := sqlstore.NewStore(db)

	return &Services{
		DB:             db,
		Store:          store,
		AuthService:    service.NewAuthService(cfg.JWTSecretKey, cfg.JWTAlgorithm),
		ClientService:  service.NewClientService(store),
		ProductService: service.NewProductService(store),
		OrderService:   service.NewOrderService(store),
		ExcelService:   service.NewExcelService(),
	}, nil
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
