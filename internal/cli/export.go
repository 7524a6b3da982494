package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/storeldb/storeapi/internal/core/repository"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write spreadsheet reports",
	Long:  "Write the sales-by-client and order detail workbooks served by the API to disk",
}

var exportSalesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Export sales by client",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		sales, err := services.ClientService.SalesReport(cmd.Context(), repository.SalesFilter{})
		if err != nil {
			return fmt.Errorf("failed to load sales: %w", err)
		}

		data, err := services.ExcelService.SalesByClientReport(sales)
		if err != nil {
			return err
		}

		return writeExport(data, services.ExcelService.SalesReportFileName())
	},
}

var exportOrderCmd = &cobra.Command{
	Use:   "order <order-id>",
	Short: "Export one order with its details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orderID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid order ID: %s", args[0])
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		order, err := services.OrderService.OrderWithDetails(cmd.Context(), orderID)
		if err != nil {
			return err
		}

		data, err := services.ExcelService.OrderDetailReport(order)
		if err != nil {
			return err
		}

		return writeExport(data, services.ExcelService.OrderReportFileName(order.OrderID))
	},
}

func writeExport(data []byte, defaultName string) error {
	path := exportOut
	if path == "" {
		path = defaultName
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", "output file (default is the report's standard file name)")

	exportCmd.AddCommand(exportSalesCmd)
	exportCmd.AddCommand(exportOrderCmd)
	rootCmd.AddCommand(exportCmd)
}
