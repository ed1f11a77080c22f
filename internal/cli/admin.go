package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rbconsole/internal/console"
	"rbconsole/internal/models"
	"rbconsole/internal/widgets"
)

// inline reduces a form validation error to the message shown under the field.
func inline(err error) error {
	var fe *console.FormError
	if errors.As(err, &fe) {
		return errors.New(fe.Message)
	}
	return err
}

func newExceptionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "exceptions", Short: "Manage time-bound waivers"}

	var active bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List waivers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := console.NewExceptions(app.client, app.deps()).Load(cmd.Context(), active)
			if err != nil {
				return err
			}
			return app.emit(out, func(w io.Writer) error { return renderExceptions(w, out) })
		},
	}
	list.Flags().BoolVar(&active, "active", false, "only waivers that have not expired")

	var form console.ExceptionForm
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a waiver",
		Example: `  rbconsole exceptions create --control S3_PUBLIC_READ \
    --selector '{"asset_id":"arn:aws:s3:::logs"}' --reason "access logs" --expires 2025-12-31`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ex, err := console.NewExceptions(app.client, app.deps()).Create(cmd.Context(), form)
			if err != nil {
				return inline(err)
			}
			return app.emit(ex, nil)
		},
	}
	create.Flags().StringVar(&form.ControlID, "control", "", "control id")
	create.Flags().StringVar(&form.Selector, "selector", "", `JSON selector with one of asset_id, type, env or cloud`)
	create.Flags().StringVar(&form.Reason, "reason", "", "why the finding is accepted")
	create.Flags().StringVar(&form.ExpiresAt, "expires", "", "expiry date, YYYY-MM-DD")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a waiver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := console.NewExceptions(app.client, app.deps()).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return app.emit(map[string]string{"deleted": args[0]}, nil)
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func renderExceptions(w io.Writer, out []models.Exception) error {
	tbl := &widgets.Table{Headers: []string{"ID", "CONTROL", "SELECTOR", "EXPIRES", "REASON", "CREATED BY"}, Empty: "No exceptions."}
	for _, e := range out {
		tbl.Append(e.ID, e.ControlID, formatSelector(e.Selector), e.ExpiresAt, e.Reason, e.CreatedBy)
	}
	return tbl.Render(w)
}

func formatSelector(sel map[string]any) string {
	tags := make(map[string]string, len(sel))
	for k, v := range sel {
		tags[k] = fmt.Sprint(v)
	}
	return formatTags(tags)
}

func newVendorsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "vendors", Short: "Third-party vendor registry"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List vendors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := console.NewVendors(app.client, app.deps()).Load(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(out, func(w io.Writer) error { return renderVendors(w, out) })
		},
	}

	var v models.Vendor
	var risk string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v.Name, v.Risk = args[0], models.Risk(strings.ToLower(risk))
			created, err := console.NewVendors(app.client, app.deps()).Add(cmd.Context(), v)
			if err != nil {
				return inline(err)
			}
			return app.emit(created, nil)
		},
	}
	add.Flags().StringVar(&risk, "risk", string(models.RiskMedium), "low, medium or high")
	add.Flags().BoolVar(&v.DPASigned, "dpa-signed", false, "a data processing agreement is signed")
	add.Flags().BoolVar(&v.PII, "pii", false, "the vendor processes personal data")

	bulk := &cobra.Command{
		Use:   "bulk FILE",
		Short: "Register vendors from a JSON array, - for stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(app.stdin)
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			created, err := console.NewVendors(app.client, app.deps()).Bulk(cmd.Context(), string(data))
			if err != nil {
				return inline(err)
			}
			return app.emit(created, func(w io.Writer) error { return renderVendors(w, created) })
		},
	}

	cmd.AddCommand(list, add, bulk)
	return cmd
}

func renderVendors(w io.Writer, out []models.Vendor) error {
	tbl := &widgets.Table{Headers: []string{"ID", "NAME", "RISK", "DPA", "PII"}, Empty: "No vendors."}
	for _, v := range out {
		tbl.Append(v.ID, v.Name, string(v.Risk), yesNo(v.DPASigned), yesNo(v.PII))
	}
	return tbl.Render(w)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
