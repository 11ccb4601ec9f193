package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"cartflow/pkg/cart"
	cartpg "cartflow/pkg/cart/postgres"
	"cartflow/pkg/catalog"
	catalogpg "cartflow/pkg/catalog/postgres"
	"cartflow/pkg/config"
	"cartflow/pkg/logger"
	"cartflow/pkg/order"
	orderpg "cartflow/pkg/order/postgres"
	"cartflow/pkg/otel"
	"cartflow/pkg/reservation"
	"cartflow/pkg/user"
	userpg "cartflow/pkg/user/postgres"
)

var (
	cfg         config.Config
	redisClient *redis.Client
	items       catalog.Repository
	carts       cart.Repository
	orders      order.Repository
	users       user.Repository
	coordinator *reservation.Coordinator
	log         *logger.Logger
	tracer      trace.Tracer
)

var schema = []string{
	"CREATE TABLE IF NOT EXISTS items (id TEXT PRIMARY KEY, product_id TEXT UNIQUE, product_title TEXT, quantity INT, description TEXT, price NUMERIC)",
	"CREATE TABLE IF NOT EXISTS carts (id TEXT PRIMARY KEY, user_id TEXT UNIQUE)",
	"CREATE TABLE IF NOT EXISTS orders (id TEXT PRIMARY KEY, cart_id TEXT, items JSONB)",
	"CREATE TABLE IF NOT EXISTS users (id TEXT PRIMARY KEY, username TEXT UNIQUE, password_hash TEXT, is_admin BOOLEAN)",
}

// @title CartFlow API
// @version 1.0
// @description API for managing the catalog, carts and orders
// @host localhost:8443
// @BasePath /
func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	level := logger.LevelInfo
	if cfg.LogLevel == "debug" {
		level = logger.LevelDebug
	}
	log = logger.New(os.Stdout, level, cfg.ServiceName, otel.GetTraceID)

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.ServiceName,
		Host:        cfg.OtelHost,
		Probability: cfg.OtelProb,
	})
	if err != nil {
		log.Error(context.Background(), "init tracing", "error", err)
		return
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer(cfg.ServiceName)

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error(context.Background(), "db connect", "error", err)
		os.Exit(1)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Error(context.Background(), "create table", "error", err)
			os.Exit(1)
		}
	}

	items = catalogpg.New(db)
	carts = cartpg.New(db)
	orders = orderpg.New(db)
	users = userpg.New(db)
	coordinator = reservation.New(orders, items, log)

	redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	r := mux.NewRouter()
	r.Use(traceMiddleware)
	r.HandleFunc("/register", registerHandler).Methods(http.MethodPost)
	r.HandleFunc("/login", loginHandler).Methods(http.MethodPost)

	itemsAPI := r.PathPrefix("/items").Subrouter()
	itemsAPI.Use(authMiddleware)
	itemsAPI.HandleFunc("", createItemHandler).Methods(http.MethodPost)
	itemsAPI.HandleFunc("", listItemsHandler).Methods(http.MethodGet)
	itemsAPI.HandleFunc("/{id}", getItemHandler).Methods(http.MethodGet)
	itemsAPI.HandleFunc("/{id}", updateItemHandler).Methods(http.MethodPut)

	cartsAPI := r.PathPrefix("/carts").Subrouter()
	cartsAPI.Use(authMiddleware)
	cartsAPI.HandleFunc("", createCartHandler).Methods(http.MethodPost)
	cartsAPI.HandleFunc("/{id}", getCartHandler).Methods(http.MethodGet)
	cartsAPI.HandleFunc("/{id}", updateCartHandler).Methods(http.MethodPut)
	cartsAPI.HandleFunc("/{id}", deleteCartHandler).Methods(http.MethodDelete)

	ordersAPI := r.PathPrefix("/orders").Subrouter()
	ordersAPI.Use(authMiddleware)
	ordersAPI.HandleFunc("", createOrderHandler).Methods(http.MethodPost)
	ordersAPI.HandleFunc("", listOrdersHandler).Methods(http.MethodGet)
	ordersAPI.HandleFunc("/{id}", getOrderHandler).Methods(http.MethodGet)
	ordersAPI.HandleFunc("/{id}", addToOrderHandler).Methods(http.MethodPut)
	ordersAPI.HandleFunc("/{id}/items/{productID}", removeLineHandler).Methods(http.MethodDelete)
	ordersAPI.HandleFunc("/{id}/checkout", checkoutHandler).Methods(http.MethodDelete)
	ordersAPI.HandleFunc("/{id}", deleteOrderHandler).Methods(http.MethodDelete)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	log.Info(context.Background(), "listening", "addr", cfg.HTTPAddr)
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		err = http.ListenAndServeTLS(cfg.HTTPAddr, cfg.CertFile, cfg.KeyFile, r)
	} else {
		err = http.ListenAndServe(cfg.HTTPAddr, r)
	}
	if err != nil {
		log.Error(context.Background(), "server closed", "error", err)
	}
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
