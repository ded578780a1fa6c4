package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"shopkart/internal/api"
	"shopkart/internal/cart"
	"shopkart/internal/catalog"
	"shopkart/internal/checkout"
	"shopkart/internal/notify"
	"shopkart/internal/token"
	"shopkart/pkg/database"
	"shopkart/pkg/models"
	"shopkart/pkg/utils"
)

func main() {
	cfg := utils.LoadClientConfig()
	tokenDefault := cfg.TokenPath
	if tokenDefault == "" {
		tokenDefault = token.DefaultPath()
	}

	global := flag.NewFlagSet("shopkart", flag.ExitOnError)
	baseURL := global.String("api", cfg.BaseURL, "storefront API base URL")
	tokenPath := global.String("token", tokenDefault, "session file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := api.NewClient(*baseURL)
	store := &token.Store{Path: *tokenPath}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, store, sub, args[2:])
	case "products":
		handleProducts(ctx, client, sub, args[2:])
	case "cart":
		handleCart(ctx, client, store, sub, args[2:])
	case "checkout":
		handleCheckout(ctx, client, store, args[1:])
	case "watch":
		handleWatch(ctx, client, store, *baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *api.Client, store *token.Store, sub string, args []string) {
	switch sub {
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		password := fs.String("password", "", "password")
		confirm := fs.String("confirm", "", "password confirmation")
		_ = fs.Parse(args)

		if err := validateRegistration(*username, *password, *confirm); err != nil {
			log.Fatalf("register: %v", err)
		}
		if err := client.Register(ctx, *username, *password); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		fmt.Println("✅ registered, now log in with: shopkart auth login")
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		username := fs.String("username", "", "username")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *password == "" {
			log.Fatal("username and password are required")
		}
		res, err := client.Login(ctx, *username, *password)
		if err != nil {
			log.Fatalf("login failed: %v", err)
		}
		sess := token.Session{Token: res.Token, Username: res.Username, Balance: res.Balance}
		if err := store.Save(sess); err != nil {
			log.Fatalf("save session: %v", err)
		}
		fmt.Printf("✅ logged in as %s (wallet balance $%.2f)\n", res.Username, res.Balance)
	case "logout":
		if err := store.Clear(); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	default:
		log.Fatal("usage: shopkart auth <register|login|logout>")
	}
}

func handleProducts(ctx context.Context, client *api.Client, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("products list", flag.ExitOnError)
		cached := fs.Bool("cached", false, "serve from the local cache without hitting the backend")
		_ = fs.Parse(args)

		provider, closeDB := newProvider(client)
		defer closeDB()

		var (
			products []models.Product
			err      error
		)
		if *cached {
			products, err = provider.LoadCached(ctx)
		} else {
			products, err = provider.Load(ctx)
		}
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(products)
	case "search":
		fs := flag.NewFlagSet("products search", flag.ExitOnError)
		query := fs.String("q", "", "search query")
		_ = fs.Parse(args)
		if *query == "" {
			log.Fatal("search query is required")
		}

		provider, closeDB := newProvider(client)
		defer closeDB()

		products, err := provider.Search(ctx, *query)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		printJSON(products)
	case "show":
		fs := flag.NewFlagSet("products show", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("product id is required")
		}

		provider, closeDB := newProvider(client)
		defer closeDB()

		products, err := provider.Load(ctx)
		if err != nil {
			log.Fatalf("show failed: %v", err)
		}
		for _, p := range products {
			if p.ID == *id {
				printJSON(p)
				return
			}
		}
		log.Fatalf("product %s not found", *id)
	case "export":
		fs := flag.NewFlagSet("products export", flag.ExitOnError)
		format := fs.String("format", "json", "export format: json or csv")
		out := fs.String("out", "", "output path (defaults to data/products.<format>)")
		_ = fs.Parse(args)

		provider, closeDB := newProvider(client)
		defer closeDB()

		products, err := provider.Load(ctx)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}

		path := *out
		if path == "" {
			path = filepath.Join("data", "products."+*format)
		}
		switch *format {
		case "json":
			err = writeJSON(path, products)
		case "csv":
			err = writeCSV(path, products)
		default:
			log.Fatalf("unknown format %q", *format)
		}
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		log.Printf("✅ exported %d products to %s", len(products), path)
	default:
		log.Fatal("usage: shopkart products <list|search|show|export>")
	}
}

func handleCart(ctx context.Context, client *api.Client, store *token.Store, sub string, args []string) {
	co, closeDB := newCoordinator(ctx, client, store)
	defer closeDB()

	switch sub {
	case "show":
		items, err := co.Refresh(ctx)
		if err != nil {
			fatalCart("show", err)
		}
		printCart(items)
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		productID := fs.String("product-id", "", "product id")
		_ = fs.Parse(args)
		if *productID == "" {
			log.Fatal("product-id is required")
		}

		if _, err := co.Refresh(ctx); err != nil {
			fatalCart("add", err)
		}
		items, err := co.AddItem(ctx, *productID)
		if err != nil {
			fatalCart("add", err)
		}
		printCart(items)
	case "set":
		fs := flag.NewFlagSet("cart set", flag.ExitOnError)
		productID := fs.String("product-id", "", "product id")
		quantity := fs.Int("q", 1, "new quantity (0 removes the item)")
		_ = fs.Parse(args)
		if *productID == "" {
			log.Fatal("product-id is required")
		}

		items, err := co.SetQuantity(ctx, *productID, *quantity)
		if err != nil {
			fatalCart("set", err)
		}
		printCart(items)
	case "remove":
		fs := flag.NewFlagSet("cart remove", flag.ExitOnError)
		productID := fs.String("product-id", "", "product id")
		_ = fs.Parse(args)
		if *productID == "" {
			log.Fatal("product-id is required")
		}

		items, err := co.SetQuantity(ctx, *productID, 0)
		if err != nil {
			fatalCart("remove", err)
		}
		printCart(items)
	default:
		log.Fatal("usage: shopkart cart <show|add|set|remove>")
	}
}

func handleCheckout(ctx context.Context, client *api.Client, store *token.Store, args []string) {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	addressID := fs.String("address-id", "", "delivery address id")
	addAddress := fs.String("add-address", "", "save a new delivery address")
	listAddresses := fs.Bool("list-addresses", false, "list saved delivery addresses")
	_ = fs.Parse(args)

	tok, err := store.Token()
	if err != nil {
		log.Fatalf("checkout: %v", err)
	}
	if tok == "" {
		log.Fatal("checkout: please login first")
	}

	if *listAddresses {
		addrs, err := client.Addresses(ctx, tok)
		if err != nil {
			log.Fatalf("list addresses failed: %v", err)
		}
		printJSON(addrs)
		return
	}
	if *addAddress != "" {
		addrs, err := client.AddAddress(ctx, tok, *addAddress)
		if err != nil {
			log.Fatalf("add address failed: %v", err)
		}
		printJSON(addrs)
		return
	}

	co, closeDB := newCoordinator(ctx, client, store)
	defer closeDB()

	items, err := co.Refresh(ctx)
	if err != nil {
		fatalCart("checkout", err)
	}

	sess, err := store.Load()
	if err != nil {
		log.Fatalf("checkout: %v", err)
	}
	var balance float64
	if sess != nil {
		balance = sess.Balance
	}

	if err := checkout.Validate(items, *addressID, balance); err != nil {
		log.Fatalf("checkout: %v", err)
	}

	summary := checkout.Summarize(items)
	if err := client.Checkout(ctx, tok, *addressID); err != nil {
		log.Fatalf("checkout failed: %v", err)
	}

	fmt.Printf("✅ order placed: %d products, total $%.2f\n", summary.Products, summary.Total)
}

func handleWatch(ctx context.Context, client *api.Client, store *token.Store, baseURL string) {
	co, closeDB := newCoordinator(ctx, client, store)
	defer closeDB()

	if _, err := co.Refresh(ctx); err != nil {
		fatalCart("watch", err)
	}

	wsURL, err := notify.URLFor(baseURL, "/ws")
	if err != nil {
		log.Fatalf("watch: %v", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := &notify.Watcher{
		URL: wsURL,
		OnEvent: func(ev notify.CartEvent) {
			items, err := co.Refresh(ctx)
			if err != nil {
				log.Printf("[watch] refresh failed: %v", err)
				return
			}
			log.Printf("[watch] %s: %d products, total $%.2f",
				ev.Type, cart.TotalDistinctItems(items), cart.TotalValue(items))
		},
	}

	for {
		if err := watcher.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[watch] disconnected: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(1 * time.Second):
		}
	}
}

func newProvider(client *api.Client) (*catalog.Provider, func()) {
	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("cache migrate failed: %v", err)
	}
	return catalog.NewProvider(client, catalog.NewCache(db)), func() { _ = db.Close() }
}

func newCoordinator(ctx context.Context, client *api.Client, store *token.Store) (*cart.Coordinator, func()) {
	provider, closeDB := newProvider(client)
	if _, err := provider.Load(ctx); err != nil {
		closeDB()
		log.Fatalf("load catalog: %v", err)
	}
	co := cart.NewCoordinator(client, store, provider, cart.NewState())
	return co, closeDB
}

func printCart(items []models.LineItem) {
	printJSON(items)
	summary := checkout.Summarize(items)
	fmt.Printf("Products: %d\n", summary.Products)
	fmt.Printf("Order total: $%.2f\n", summary.Total)
}

func fatalCart(op string, err error) {
	switch {
	case errors.Is(err, cart.ErrDuplicateItem):
		log.Fatal("item already in cart; use `shopkart cart set` to change its quantity")
	case errors.Is(err, cart.ErrUnauthenticated):
		log.Fatal("please login first: shopkart auth login")
	case errors.Is(err, api.ErrUnauthorized):
		log.Fatal("session expired, please login again")
	default:
		log.Fatalf("%s failed: %v", op, err)
	}
}

func validateRegistration(username, password, confirm string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is a required field")
	}
	if len(username) < 6 {
		return errors.New("username must be at least 6 characters")
	}
	if password == "" {
		return errors.New("password is a required field")
	}
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	return nil
}

func writeJSON(path string, products []models.Product) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, products []models.Product) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"id", "name", "category", "cost", "rating", "image"}); err != nil {
		return err
	}
	for _, p := range products {
		if err := writer.Write([]string{
			p.ID,
			p.Name,
			p.Category,
			fmt.Sprintf("%g", p.Cost),
			fmt.Sprintf("%d", p.Rating),
			p.Image,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func printUsage() {
	fmt.Println("shopkart <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth register|login|logout")
	fmt.Println("  products list|search|show|export")
	fmt.Println("  cart show|add|set|remove")
	fmt.Println("  checkout [-list-addresses | -add-address | -address-id]")
	fmt.Println("  watch")
}
