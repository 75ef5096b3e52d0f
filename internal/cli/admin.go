package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rinsh4dd/e-com/internal/admin"
	"github.com/rinsh4dd/e-com/internal/models"
)

func (r *runner) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back office (admin accounts only)",
	}
	cmd.AddCommand(
		r.adminDashboardCmd(),
		r.adminUsersCmd(),
		r.adminBlockCmd("block", "Block a user from signing in", true),
		r.adminBlockCmd("unblock", "Let a blocked user sign in again", false),
		r.adminDeleteUserCmd(),
		r.adminOrdersCmd(),
		r.adminStatusCmd(),
		r.adminProductsCmd(),
		r.adminAddProductCmd(),
		r.adminToggleStockCmd(),
		r.adminDeleteProductCmd(),
	)
	return guard(cmd, r.requireAdmin)
}

func (r *runner) adminDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Totals, revenue and the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := r.env.Services.Admin.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return r.show(cmd, d, func(w io.Writer) error {
				fmt.Fprintf(w, "Users: %d  Products: %d  Orders: %d  Revenue: %s\n\n",
					d.Users, d.Products, d.Orders, money(d.Revenue))
				rows := make([][]string, 0, len(d.LastSevenDays))
				for _, day := range d.LastSevenDays {
					rows = append(rows, []string{day.Date, strconv.Itoa(day.Orders), money(day.Revenue)})
				}
				if err := table(w, []string{"DATE", "ORDERS", "REVENUE"}, rows); err != nil {
					return err
				}
				fmt.Fprintln(w)
				rows = rows[:0]
				for _, st := range models.OrderStatuses {
					rows = append(rows, []string{string(st), strconv.Itoa(d.StatusDistribution[st])})
				}
				return table(w, []string{"STATUS", "ORDERS"}, rows)
			})
		},
	}
}

func (r *runner) adminUsersCmd() *cobra.Command {
	var f admin.UserFilter
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := r.env.Services.Admin.ListUsers(cmd.Context(), f)
			if err != nil {
				return err
			}
			return r.show(cmd, users, func(w io.Writer) error {
				rows := make([][]string, 0, len(users))
				for _, u := range users {
					status := "active"
					if u.IsBlocked {
						status = "blocked"
					}
					rows = append(rows, []string{u.ID.String(), u.Name, u.Email, string(u.Role), status, strconv.Itoa(len(u.Orders))})
				}
				return table(w, []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "ORDERS"}, rows)
			})
		},
	}
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "match name or email")
	cmd.Flags().StringVar(&f.Role, "role", "all", "all, user or admin")
	return cmd
}

// adminBlockCmd changes the flag only; a signed-in user keeps their session.
func (r *runner) adminBlockCmd(use, short string, blocked bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <userId>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := r.env.Services.Admin.SetBlocked(cmd.Context(), models.ID(args[0]), blocked)
			if err != nil {
				return err
			}
			return r.show(cmd, u, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s is now %sed.\n", u.Email, use)
				return err
			})
		},
	}
}

func (r *runner) adminDeleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <userId>",
		Short: "Delete a user document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.env.Services.Admin.DeleteUser(cmd.Context(), models.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s deleted.\n", args[0])
			return nil
		},
	}
}

func (r *runner) adminOrdersCmd() *cobra.Command {
	var userID string
	var stats, top bool
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "All orders across users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := r.env.Services.Admin
			switch {
			case userID != "":
				uo, err := svc.UserOrders(ctx, models.ID(userID))
				if err != nil {
					return err
				}
				return r.show(cmd, uo, func(w io.Writer) error {
					fmt.Fprintf(w, "%s <%s>: %d orders, %d delivered, %d pending, %s spent\n\n",
						uo.User.Name, uo.User.Email, uo.Stats.Total, uo.Stats.Delivered, uo.Stats.Pending, money(uo.Stats.TotalAmount))
					return table(w, orderHeader, orderRows(uo.Orders))
				})
			case stats:
				st, err := svc.OrderStats(ctx)
				if err != nil {
					return err
				}
				return r.show(cmd, st, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Total %d  pending %d  shipped %d  delivered %d  cancelled %d  revenue %s\n",
						st.Total, st.Pending, st.Shipped, st.Delivered, st.Cancelled, money(st.Revenue))
					return err
				})
			case top:
				sales, err := svc.TopProducts(ctx)
				if err != nil {
					return err
				}
				return r.show(cmd, sales, func(w io.Writer) error {
					rows := make([][]string, 0, len(sales))
					for _, s := range sales {
						rows = append(rows, []string{s.ProductID.String(), s.Name, strconv.Itoa(s.Units), money(s.Revenue)})
					}
					return table(w, []string{"ID", "NAME", "SOLD", "REVENUE"}, rows)
				})
			}

			rows, err := svc.ListOrders(ctx)
			if err != nil {
				return err
			}
			return r.show(cmd, rows, func(w io.Writer) error {
				out := make([][]string, 0, len(rows))
				for _, row := range rows {
					out = append(out, []string{
						strconv.FormatInt(row.ID, 10), row.UserID.String(), row.UserName,
						money(row.TotalAmount), string(row.PaymentStatus), string(row.OrderStatus),
					})
				}
				return table(w, []string{"ID", "USER", "NAME", "TOTAL", "PAID", "STATUS"}, out)
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "only this user's orders, with their totals")
	cmd.Flags().BoolVar(&stats, "stats", false, "counts per status and revenue")
	cmd.Flags().BoolVar(&top, "top", false, "best-selling products")
	return cmd
}

func (r *runner) adminStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <userId> <orderId> <status>",
		Short: "Move an order to shipped, delivered or cancelled",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[1])
			if err != nil {
				return err
			}
			o, err := r.env.Services.Admin.UpdateOrderStatus(cmd.Context(), models.ID(args[0]), orderID, models.OrderStatus(args[2]))
			if err != nil {
				return withDetails(err)
			}
			return r.show(cmd, o, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Order #%d is now %s.\n", o.ID, o.OrderStatus)
				return err
			})
		},
	}
}

func (r *runner) adminProductsCmd() *cobra.Command {
	var search string
	var page int
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Page through products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := r.env.Services.Admin.ListProducts(cmd.Context(), search, page)
			if err != nil {
				return err
			}
			return r.show(cmd, p, func(w io.Writer) error {
				if err := table(w, productHeader, productRows(p.Products)); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "\nPage %d of %d (%d products)\n", p.Page, p.TotalPages, p.Total)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match name, brand or category")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func (r *runner) adminAddProductCmd() *cobra.Command {
	var p models.Product
	cmd := &cobra.Command{
		Use:   "add-product",
		Short: "Add a product to the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := r.env.Services.Admin.CreateProduct(cmd.Context(), p)
			if err != nil {
				return withDetails(err)
			}
			return r.show(cmd, created, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Product %s added with id %s.\n", created.Name, created.ID)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "product name")
	f.StringVar(&p.Brand, "brand", "", "brand")
	f.StringVar(&p.Category, "category", "", fmt.Sprintf("one of %q", admin.Categories))
	f.Float64Var(&p.Price, "price", 0, "price")
	f.StringVar(&p.ImageURL, "image", "", "image URL")
	f.StringSliceVar(&p.AvailableSizes, "sizes", nil, fmt.Sprintf("sizes from %v", admin.Sizes))
	f.StringVar(&p.Description, "description", "", "description")
	f.Float64Var(&p.Discount, "discount", 0, "discount percent")
	f.StringVar(&p.SpecialOffer, "offer", "", "special offer")
	f.StringVar(&p.Warranty, "warranty", "", "warranty")
	f.BoolVar(&p.InStock, "in-stock", true, "available to order")
	return cmd
}

func (r *runner) adminToggleStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-stock <productId>",
		Short: "Flip a product between in stock and out of stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := r.env.Services.Admin.ToggleStock(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			return r.show(cmd, p, func(w io.Writer) error {
				state := "in stock"
				if !p.InStock {
					state = "out of stock"
				}
				_, err := fmt.Fprintf(w, "%s is now %s.\n", p.Name, state)
				return err
			})
		},
	}
}

func (r *runner) adminDeleteProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-product <productId>",
		Short: "Remove a product from the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.env.Services.Admin.DeleteProduct(cmd.Context(), models.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %s deleted.\n", args[0])
			return nil
		},
	}
}
