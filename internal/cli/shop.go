package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/shop"
)

func (r *runner) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalogue",
	}

	var f shop.ProductFilter
	var sort string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Sort = shop.PriceSort(sort)
			products, err := r.env.Services.Catalog.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return r.show(cmd, products, func(w io.Writer) error {
				return table(w, productHeader, productRows(products))
			})
		},
	}
	list.Flags().StringVar(&f.Category, "category", "", "only this category")
	list.Flags().StringVarP(&f.Search, "search", "s", "", "match name or brand")
	list.Flags().StringVar(&sort, "sort", "", "price order: asc or desc")
	list.Flags().IntVar(&f.Limit, "limit", shop.DefaultLimit, "how many to show")

	show := &cobra.Command{
		Use:   "show <productId>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := r.env.Services.Catalog.Get(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			return r.show(cmd, p, func(w io.Writer) error {
				fmt.Fprintf(w, "%s by %s (%s)\n", p.Name, p.Brand, p.Category)
				fmt.Fprintf(w, "Price: %s", money(p.Price))
				if p.Discount > 0 {
					fmt.Fprintf(w, " (%.0f%% off)", p.Discount)
				}
				fmt.Fprintln(w)
				fmt.Fprintf(w, "Sizes: %v\n", p.AvailableSizes)
				if !p.InStock {
					fmt.Fprintln(w, "Out of stock")
				}
				if p.Description != "" {
					fmt.Fprintln(w, p.Description)
				}
				return nil
			})
		},
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := r.env.Services.Catalog.Categories(cmd.Context())
			if err != nil {
				return err
			}
			return r.show(cmd, cats, func(w io.Writer) error {
				for _, c := range cats {
					fmt.Fprintln(w, c)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(list, show, categories)
	return cmd
}

// cartView loads the signed-in user's cart and keeps the session's cart
// count in step with every commit.
func (r *runner) cartView(cmd *cobra.Command) (*shop.CartView, error) {
	v := shop.NewCartView(r.env.Services.Cart, r.userID())
	v.OnCommit = func(items []models.CartItem) { r.env.Session.SetCartCount(len(items)) }
	if err := v.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *runner) printCart(cmd *cobra.Command, v *shop.CartView) error {
	items := v.Items()
	out := struct {
		Items []models.CartItem `json:"items"`
		Total string            `json:"total"`
		Count int               `json:"count"`
	}{items, v.Total().StringFixed(2), v.ItemCount()}
	return r.show(cmd, out, func(w io.Writer) error {
		if v.Empty() {
			_, err := fmt.Fprintln(w, "Your cart is empty.")
			return err
		}
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{it.ProductID.String(), it.Name, it.Size, strconv.Itoa(it.Quantity), money(it.Price)})
		}
		if err := table(w, []string{"ID", "NAME", "SIZE", "QTY", "PRICE"}, rows); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%d items, total ₹%s\n", out.Count, out.Total)
		return err
	})
}

func (r *runner) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "View and change your cart",
	}

	var size string
	var qty int
	keyed := func(use, short string, nargs int, op func(cmd *cobra.Command, v *shop.CartView, key models.CartKey, args []string) error) *cobra.Command {
		c := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := r.cartView(cmd)
				if err != nil {
					return err
				}
				key := models.CartKey{ProductID: models.ID(args[0]), Size: size}
				if err := op(cmd, v, key, args); err != nil {
					return err
				}
				return r.printCart(cmd, v)
			},
		}
		c.Flags().StringVar(&size, "size", "", "shoe size")
		return c
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := r.cartView(cmd)
			if err != nil {
				return err
			}
			return r.printCart(cmd, v)
		},
	}

	add := keyed("add <productId>", "Add a product in a size", 1, func(cmd *cobra.Command, v *shop.CartView, key models.CartKey, _ []string) error {
		return v.Add(cmd.Context(), key.ProductID, key.Size, qty)
	})
	add.Flags().IntVarP(&qty, "qty", "q", 1, "quantity")

	remove := keyed("remove <productId>", "Remove a cart line", 1, func(cmd *cobra.Command, v *shop.CartView, key models.CartKey, _ []string) error {
		return v.Remove(cmd.Context(), key)
	})

	setQty := keyed("qty <productId> <quantity>", "Set a line's quantity", 2, func(cmd *cobra.Command, v *shop.CartView, key models.CartKey, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return shop.ErrInvalidQuantity
		}
		return v.SetQuantity(cmd.Context(), key, n)
	})

	inc := keyed("inc <productId>", "Add one to a line", 1, func(cmd *cobra.Command, v *shop.CartView, key models.CartKey, _ []string) error {
		return v.Increase(cmd.Context(), key)
	})

	dec := keyed("dec <productId>", "Take one from a line", 1, func(cmd *cobra.Command, v *shop.CartView, key models.CartKey, _ []string) error {
		return v.Decrease(cmd.Context(), key)
	})

	cmd.AddCommand(show, add, remove, setQty, inc, dec)
	return guard(cmd, r.requireUser)
}

func (r *runner) wishlistView(cmd *cobra.Command) (*shop.WishlistView, error) {
	v := shop.NewWishlistView(r.env.Services.Wishlist, r.userID())
	if err := v.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *runner) printWishlist(cmd *cobra.Command, items []models.WishlistItem) error {
	return r.show(cmd, items, func(w io.Writer) error {
		if len(items) == 0 {
			_, err := fmt.Fprintln(w, "Your wishlist is empty.")
			return err
		}
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{it.ProductID.String(), it.Name, it.Brand, money(it.Price)})
		}
		return table(w, []string{"ID", "NAME", "BRAND", "PRICE"}, rows)
	})
}

// toggleTarget resolves the product to toggle. A listed product is taken
// from the wishlist itself so that one deleted from the catalogue can still
// be removed.
func (r *runner) toggleTarget(cmd *cobra.Command, v *shop.WishlistView, id models.ID) (*models.Product, error) {
	for _, it := range v.Items() {
		if it.ProductID == id {
			return &models.Product{ID: id, Name: it.Name, Brand: it.Brand, Price: it.Price, ImageURL: it.ImageURL}, nil
		}
	}
	return r.env.Services.Catalog.Get(cmd.Context(), id)
}

func (r *runner) wishlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "View and change your wishlist",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the wishlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := r.wishlistView(cmd)
			if err != nil {
				return err
			}
			return r.printWishlist(cmd, v.Items())
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <productId>",
		Short: "Add a product, or remove it if already there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := r.wishlistView(cmd)
			if err != nil {
				return err
			}
			p, err := r.toggleTarget(cmd, v, models.ID(args[0]))
			if err != nil {
				return err
			}
			added, err := v.Toggle(cmd.Context(), *p)
			if err != nil {
				return err
			}
			if !r.asJSON {
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s to wishlist.\n", p.Name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from wishlist.\n", p.Name)
				}
			}
			return r.printWishlist(cmd, v.Items())
		},
	}

	remove := &cobra.Command{
		Use:   "remove <productId>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := r.wishlistView(cmd)
			if err != nil {
				return err
			}
			if err := v.Remove(cmd.Context(), models.ID(args[0])); err != nil {
				return err
			}
			return r.printWishlist(cmd, v.Items())
		},
	}

	cmd.AddCommand(show, toggle, remove)
	return guard(cmd, r.requireUser)
}

func (r *runner) checkoutCmd() *cobra.Command {
	var req shop.CheckoutRequest
	var method string
	var prefill bool
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart",
		Long: `Places one order for the whole cart and empties it.

Payment methods: card, upi, netbanking, emi, cod. Only the flags of the
chosen method are read. Missing address fields are taken from the saved
shipping address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pf, err := r.env.Services.Checkout.Prefill(ctx, r.userID())
			if err != nil {
				return err
			}
			if prefill {
				return r.show(cmd, pf, func(w io.Writer) error {
					a := pf.ShippingAddress
					_, err := fmt.Fprintf(w, "%d lines, total ₹%s\nShip to: %s, %s, %s %s, %s\n",
						len(pf.Cart), pf.Total.StringFixed(2), a.Street, a.City, a.State, a.Zip, a.Country)
					return err
				})
			}

			req.Payment.Method = shop.PaymentMethod(method)
			fillAddress(&req.BillingAddress, pf.ShippingAddress)
			o, err := r.env.Services.Checkout.Checkout(ctx, r.userID(), req)
			if err != nil {
				return withDetails(err)
			}
			r.env.Session.SetCartCount(0)
			return r.show(cmd, o, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Order placed successfully! Order #%d, total %s, paid by %s.\n",
					o.ID, money(o.TotalAmount), o.PaymentMethod)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.BoolVar(&prefill, "show", false, "only show the cart total and saved address")
	f.StringVarP(&method, "method", "m", string(shop.PaymentCOD), "payment method")
	f.StringVar(&req.Payment.CardNumber, "card-number", "", "16-digit card number")
	f.StringVar(&req.Payment.CardName, "card-name", "", "name on card")
	f.StringVar(&req.Payment.Expiry, "expiry", "", "card expiry MM/YY")
	f.StringVar(&req.Payment.CVV, "cvv", "", "card CVV")
	f.StringVar(&req.Payment.UPIID, "upi", "", "UPI id")
	f.StringVar(&req.Payment.Bank, "bank", "", "net banking bank")
	f.StringVar(&req.Payment.EMIPlan, "emi-plan", "", "EMI plan")
	f.StringVar(&req.BillingAddress.Street, "street", "", "billing street")
	f.StringVar(&req.BillingAddress.City, "city", "", "billing city")
	f.StringVar(&req.BillingAddress.State, "state", "", "billing state")
	f.StringVar(&req.BillingAddress.Zip, "zip", "", "billing zip code")
	f.StringVar(&req.BillingAddress.Country, "country", "", "billing country")
	return guard(cmd, r.requireUser)
}

// fillAddress copies saved fields into the blanks of a.
func fillAddress(a *models.Address, saved models.Address) {
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&a.Street, saved.Street)
	fill(&a.City, saved.City)
	fill(&a.State, saved.State)
	fill(&a.Zip, saved.Zip)
	fill(&a.Country, saved.Country)
}

func (r *runner) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Your orders",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := r.env.Services.Orders.List(cmd.Context(), r.userID())
			if err != nil {
				return err
			}
			return r.show(cmd, orders, func(w io.Writer) error {
				if len(orders) == 0 {
					_, err := fmt.Fprintln(w, "No orders yet.")
					return err
				}
				return table(w, orderHeader, orderRows(orders))
			})
		},
	}

	show := &cobra.Command{
		Use:   "show <orderId>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			o, err := r.env.Services.Orders.Get(cmd.Context(), r.userID(), id)
			if err != nil {
				return err
			}
			return r.show(cmd, o, func(w io.Writer) error { return printOrder(w, *o) })
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <orderId>",
		Short: "Cancel an order that has not been delivered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			o, err := r.env.Services.Orders.Cancel(cmd.Context(), r.userID(), id)
			if err != nil {
				return err
			}
			return r.show(cmd, o, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Order #%d is %s.\n", o.ID, o.OrderStatus)
				return err
			})
		},
	}

	cmd.AddCommand(list, show, cancel)
	return guard(cmd, r.requireUser)
}

func parseOrderID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("order id %q: %w", s, shop.ErrOrderNotFound)
	}
	return id, nil
}

func printOrder(w io.Writer, o models.Order) error {
	fmt.Fprintf(w, "Order #%d placed %s\n", o.ID, o.CreatedAt)
	fmt.Fprintf(w, "Status: %s, payment %s (%s)\n", o.OrderStatus, o.PaymentStatus, o.PaymentMethod)
	a := o.BillingAddress
	fmt.Fprintf(w, "Bill to: %s, %s, %s %s, %s\n\n", a.Street, a.City, a.State, a.Zip, a.Country)
	rows := make([][]string, 0, len(o.Items))
	for _, it := range o.Items {
		rows = append(rows, []string{it.Name, it.Size, strconv.Itoa(it.Quantity), money(it.Price)})
	}
	if err := table(w, []string{"ITEM", "SIZE", "QTY", "PRICE"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal: %s\n", money(o.TotalAmount))
	return err
}
