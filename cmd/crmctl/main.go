package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/config"
	"github.com/umalmyha/crm/internal/infra"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/service"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type InitCmd struct{}

type AddCmd struct {
	Name    string `arg:"--name,required" help:"customer name"`
	Email   string `arg:"--email,required" help:"customer email"`
	Phone   string `arg:"--phone" help:"customer phone"`
	Company string `arg:"--company" help:"customer company"`
}

type GetCmd struct {
	ID int64 `arg:"positional,required" help:"customer id"`
}

type ListCmd struct{}

type UpdateCmd struct {
	ID      int64   `arg:"positional,required" help:"customer id"`
	Name    *string `arg:"--name" help:"new name"`
	Email   *string `arg:"--email" help:"new email"`
	Phone   *string `arg:"--phone" help:"new phone"`
	Company *string `arg:"--company" help:"new company"`
}

type DeleteCmd struct {
	ID int64 `arg:"positional,required" help:"customer id"`
}

type args struct {
	Init   *InitCmd   `arg:"subcommand:init" help:"create customers storage"`
	Add    *AddCmd    `arg:"subcommand:add" help:"add customer"`
	Get    *GetCmd    `arg:"subcommand:get" help:"show customer"`
	List   *ListCmd   `arg:"subcommand:list" help:"list customers"`
	Update *UpdateCmd `arg:"subcommand:update" help:"update supplied customer fields"`
	Delete *DeleteCmd `arg:"subcommand:delete" help:"delete customer"`
	JSON   bool       `arg:"--json" help:"print JSON instead of table"`
}

func (args) Description() string {
	return "crmctl manages customers in the configured CRM storage\n"
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: failed to load .env file - %v\n", err)
		os.Exit(exitError)
	}
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	var a args
	p, err := arg.NewParser(arg.Config{Program: "crmctl"}, &a)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	if err := p.Parse(argv); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			p.WriteHelp(stdout)
			return exitOK
		}
		p.WriteUsage(stderr)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	if p.Subcommand() == nil {
		p.WriteUsage(stderr)
		fmt.Fprintln(stderr, "error: command is required")
		return exitUsage
	}

	if err := execute(ctx, &a, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}

func execute(ctx context.Context, a *args, stdout, stderr io.Writer) error {
	cfg, err := config.Build()
	if err != nil {
		return err
	}

	logrus.SetOutput(stderr)
	logrus.SetLevel(logrus.WarnLevel)

	customerRps, closeStorage, err := infra.Storage(ctx, cfg.StorageCfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	customerSvc := service.NewCustomerService(customerRps)
	if err := customerSvc.Init(ctx); err != nil {
		return err
	}

	out := printer{w: stdout, asJSON: a.JSON}

	switch {
	case a.Init != nil:
		return out.message("Storage initialized")
	case a.Add != nil:
		c, err := customerSvc.Create(ctx, model.NewCustomer{
			Name:    a.Add.Name,
			Email:   a.Add.Email,
			Phone:   a.Add.Phone,
			Company: a.Add.Company,
		})
		if err != nil {
			return err
		}
		return out.customer(c)
	case a.Get != nil:
		c, err := customerSvc.FindByID(ctx, a.Get.ID)
		if err != nil {
			return err
		}
		return out.customer(c)
	case a.List != nil:
		customers, err := customerSvc.FindAll(ctx)
		if err != nil {
			return err
		}
		return out.customers(customers)
	case a.Update != nil:
		c, err := customerSvc.Update(ctx, a.Update.ID, model.CustomerPatch{
			Name:    a.Update.Name,
			Email:   a.Update.Email,
			Phone:   a.Update.Phone,
			Company: a.Update.Company,
		})
		if err != nil {
			return err
		}
		return out.customer(c)
	case a.Delete != nil:
		if err := customerSvc.DeleteByID(ctx, a.Delete.ID); err != nil {
			return err
		}
		return out.message("Customer deleted successfully")
	}
	return nil
}

type printer struct {
	w      io.Writer
	asJSON bool
}

func (p printer) message(msg string) error {
	if p.asJSON {
		return p.encode(map[string]string{"message": msg})
	}

	_, err := fmt.Fprintln(p.w, msg)
	return err
}

func (p printer) customer(c *model.Customer) error {
	if p.asJSON {
		return p.encode(c)
	}
	return p.table([]*model.Customer{c})
}

func (p printer) customers(customers []*model.Customer) error {
	if p.asJSON {
		return p.encode(customers)
	}
	return p.table(customers)
}

func (p printer) table(customers []*model.Customer) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tCOMPANY\tCREATED")

	rows := lo.Map(customers, func(c *model.Customer, _ int) string {
		return fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s", c.ID, c.Name, c.Email, c.Phone, c.Company, c.CreatedAt.Format("2006-01-02 15:04:05"))
	})
	for _, row := range rows {
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}

func (p printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
