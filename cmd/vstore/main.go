package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"vstore/internal/config"
	"vstore/internal/individual"
	"vstore/internal/logging"
	"vstore/internal/server"
	"vstore/internal/storage"
	"vstore/internal/storage/embedded"
	"vstore/internal/vstorage"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: vstore [flags] <command> [args]

commands:
  get <key>          print the value stored under key
  get-raw <key>      write the raw bytes stored under key to stdout
  get-ind <uri>      fetch and parse an individual, print its identifier
  put <key> <value>  store value under key
  remove <key>       delete key
  count              print the number of entries in the namespace
  keys               list keys (embedded backend only)
  serve              answer remote-protocol lookups for this backend

flags:
`)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	backend := flag.String("backend", "", "storage backend (overrides config)")
	engine := flag.String("engine", "", "embedded engine (overrides config)")
	dbPath := flag.String("path", "", "embedded base path (overrides config)")
	address := flag.String("addr", "", "remote server address (overrides config)")
	listen := flag.String("listen", "", "serve listen address (overrides config)")
	nsName := flag.String("ns", "individuals", "namespace: individuals, tickets or az")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// CLI flags override config file values
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *engine != "" {
		cfg.Storage.Engine = *engine
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	if *address != "" {
		cfg.Storage.Address = *address
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Init(cfg.Log.Level, cfg.Log.Format)

	ns, err := parseNamespace(*nsName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	st, err := vstorage.NewStorage(storageConfig(cfg))
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	v := vstorage.New(st)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "get":
		requireArgs(args, 2)
		report(v.GetValue(ns, args[1]))
	case "get-raw":
		requireArgs(args, 2)
		r := v.GetRawValue(ns, args[1])
		if !r.IsOk() {
			fail(r.Code, r.Message)
		}
		os.Stdout.Write(r.Value)
	case "get-ind":
		requireArgs(args, 2)
		var ind individual.Individual
		r := v.GetIndividualFromStorage(ns, args[1], &ind)
		if !r.IsOk() {
			fail(r.Code, r.Message)
		}
		fmt.Println(ind.ID())
	case "put":
		requireArgs(args, 3)
		r := v.PutValue(ns, args[1], args[2])
		if !r.IsOk() {
			fail(r.Code, r.Message)
		}
	case "remove":
		requireArgs(args, 2)
		r := v.RemoveValue(ns, args[1])
		if !r.IsOk() {
			fail(r.Code, r.Message)
		}
	case "count":
		r := v.Count(ns)
		if !r.IsOk() {
			fail(r.Code, r.Message)
		}
		fmt.Println(r.Value)
	case "keys":
		listKeys(st, ns)
	case "serve":
		serve(st, cfg.Server.Listen)
	default:
		usage()
		os.Exit(2)
	}
}

func listKeys(st storage.Storage, ns storage.ID) {
	emb, ok := st.(*embedded.Store)
	if !ok {
		fmt.Fprintln(os.Stderr, "vstore: keys requires the embedded backend")
		os.Exit(1)
	}
	for _, key := range emb.Instance(ns).Keys() {
		fmt.Println(key)
	}
}

func serve(st storage.Storage, listen string) {
	srv := server.New(st)
	if err := srv.Listen(listen); err != nil {
		log.Fatalf("server: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		srv.Close()
	}()

	if err := srv.Serve(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func storageConfig(cfg *config.Config) vstorage.Config {
	mode := storage.ReadWrite
	if cfg.Storage.Mode == "ro" {
		mode = storage.ReadOnly
	}
	return vstorage.Config{
		Backend:         cfg.Storage.Backend,
		Engine:          cfg.Storage.Engine,
		Path:            config.ExpandHome(cfg.Storage.Path),
		Mode:            mode,
		ReopenThreshold: cfg.Storage.ReopenThreshold,
		Address:         cfg.Storage.Address,
	}
}

func parseNamespace(name string) (storage.ID, error) {
	switch name {
	case "individuals":
		return storage.Individuals, nil
	case "tickets":
		return storage.Tickets, nil
	case "az":
		return storage.Az, nil
	}
	return storage.Individuals, fmt.Errorf("unknown namespace %q", name)
}

func requireArgs(args []string, n int) {
	if len(args) != n {
		usage()
		os.Exit(2)
	}
}

func report(r storage.Result[string]) {
	if !r.IsOk() {
		fail(r.Code, r.Message)
	}
	fmt.Println(r.Value)
}

func fail(code storage.Code, msg string) {
	if msg != "" {
		fmt.Fprintf(os.Stderr, "vstore: %s: %s\n", code, msg)
	} else {
		fmt.Fprintf(os.Stderr, "vstore: %s\n", code)
	}
	os.Exit(1)
}
