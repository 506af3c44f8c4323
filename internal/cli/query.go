package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vietddude/employees/internal/control"
	"github.com/vietddude/employees/internal/core/domain"
	"github.com/vietddude/employees/internal/directory"
)

var (
	createName   string
	createSalary int
	createAge    int
	createTitle  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every employee",
	Args:  cobra.NoArgs,
	Run: withService(func(ctx context.Context, svc *directory.Service, args []string) error {
		employees, err := svc.ListAll(ctx)
		if err != nil {
			return err
		}
		printEmployees(os.Stdout, employees)
		return nil
	}),
}

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one employee by id",
	Args:  cobra.ExactArgs(1),
	Run: withService(func(ctx context.Context, svc *directory.Service, args []string) error {
		employee, err := svc.GetByID(ctx, args[0])
		if err != nil {
			return err
		}
		printEmployees(os.Stdout, []domain.Employee{employee})
		return nil
	}),
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "List employees whose name contains term, ignoring case",
	Args:  cobra.ExactArgs(1),
	Run: withService(func(ctx context.Context, svc *directory.Service, args []string) error {
		employees, err := svc.SearchByName(ctx, args[0])
		if err != nil {
			return err
		}
		printEmployees(os.Stdout, employees)
		return nil
	}),
}

var highestSalaryCmd = &cobra.Command{
	Use:   "highest-salary",
	Short: "Print the highest salary",
	Args:  cobra.NoArgs,
	Run: withService(func(ctx context.Context, svc *directory.Service, args []string) error {
		salary, err := svc.HighestSalary(ctx)
		if err != nil {
			return err
		}
		fmt.Println(salary)
		return nil
	}),
}

var topEarnersCmd = &cobra.Command{
	Use:   "top-earners",
	Short: "List the names of the ten highest paid employees",
	Args:  cobra.NoArgs,
	Run: withService(func(ctx context.Context, svc *directory.Service, args []string) error {
		names, err := svc.TopTenEarners(ctx)
		if err != nil {
			return err
		}
		printRanking(os.Stdout, names)
		return nil
	}),
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an employee",
	Args:  cobra.NoArgs,
	Run: withService(func(ctx context.Context, svc *directory.Service, args []string) error {
		req := domain.CreateEmployeeRequest{Name: createName, Title: createTitle}
		if createSalary != 0 {
			req.Salary = domain.IntPtr(createSalary)
		}
		if createAge != 0 {
			req.Age = domain.IntPtr(createAge)
		}

		employee, err := svc.Create(ctx, req)
		if err != nil {
			return err
		}
		printEmployees(os.Stdout, []domain.Employee{employee})
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an employee by id",
	Args:  cobra.ExactArgs(1),
	Run: withService(func(ctx context.Context, svc *directory.Service, args []string) error {
		name, err := svc.DeleteByID(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Successfully deleted employee %s\n", name)
		return nil
	}),
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "employee name")
	createCmd.Flags().IntVar(&createSalary, "salary", 0, "employee salary")
	createCmd.Flags().IntVar(&createAge, "age", 0, "employee age")
	createCmd.Flags().StringVar(&createTitle, "title", "", "employee title")

	rootCmd.AddCommand(listCmd, getCmd, searchCmd, highestSalaryCmd, topEarnersCmd, createCmd, deleteCmd)
}

// withService runs fn against a directory service built from the config,
// without starting the HTTP server. Ctrl-C cancels the remote call.
func withService(fn func(ctx context.Context, svc *directory.Service, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		app, err := control.New(controlConfig(cfg), slog.Default())
		if err != nil {
			slog.Error("Failed to initialize gateway", "error", err)
			os.Exit(1)
		}
		defer func() {
			_ = app.Close()
		}()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := fn(ctx, app.Service(), args); err != nil {
			slog.Error("Command failed", "command", cmd.Name(), "kind", domain.KindOf(err).String(), "error", err)
			os.Exit(1)
		}
	}
}

func printEmployees(out io.Writer, employees []domain.Employee) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSALARY\tAGE\tTITLE\tEMAIL")
	for _, e := range employees {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, orDash(e.Name), optInt(e.Salary), optInt(e.Age), orDash(e.Title), orDash(e.Email))
	}
	_ = w.Flush()
}

func printRanking(out io.Writer, names []string) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANK\tNAME")
	for i, name := range names {
		_, _ = fmt.Fprintf(w, "%d\t%s\n", i+1, name)
	}
	_ = w.Flush()
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
