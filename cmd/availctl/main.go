// availctl - консольная утилита для проверки часов работы и карты слотов
// без поднятия HTTP сервера. Использует те же use cases, что и сервис.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/rediscache"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	bookingTypeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/bookingtype"
	openHoursRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/openhours"
	getOpenHoursUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_open_hours"
	getSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const usage = `Usage:
  availctl open-hours -arena <id> -date <YYYY-MM-DD> [-type <id>] [-no-cache]
  availctl slots      -type <id> -date <YYYY-MM-DD> [-subtype <id>] [-closed] [-bookings] [-past] [-no-cache]
  availctl types      -arena <id>
  availctl booking    -id <id>

Flags:
  -config <path>   путь к config.toml (по умолчанию config.toml)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "open-hours":
		runOpenHours(os.Args[2:])
	case "slots":
		runSlots(os.Args[2:])
	case "types":
		runTypes(os.Args[2:])
	case "booking":
		runBooking(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

type deps struct {
	db    *sql.DB
	rdb   *redis.Client
	log   *logger.Logger
	cache *rediscache.Cache

	openHoursRepository   *openHoursRepo.Repository
	bookingTypeRepository *bookingTypeRepo.Repository
	bookingRepository     *bookingRepo.Repository
}

func setup(configPath string) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logs.File, "error")
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return &deps{
		db:    db,
		rdb:   rdb,
		log:   log,
		cache: rediscache.New(rdb, nil, log),

		openHoursRepository:   openHoursRepo.NewRepository(db),
		bookingTypeRepository: bookingTypeRepo.NewRepository(db),
		bookingRepository:     bookingRepo.NewRepository(db),
	}, nil
}

func (d *deps) close() {
	d.db.Close()
	d.rdb.Close()
	d.log.Close()
}

func runOpenHours(args []string) {
	fs := flag.NewFlagSet("open-hours", flag.ExitOnError)
	configPath := fs.String("config", "config.toml", "путь к config.toml")
	arenaID := fs.Int64("arena", 0, "ID арены")
	typeID := fs.Int64("type", 0, "ID типа игры (0 - общие часы арены)")
	dateStr := fs.String("date", "", "дата YYYY-MM-DD")
	noCache := fs.Bool("no-cache", false, "обойти кеш")
	fs.Parse(args)

	if *arenaID == 0 || *dateStr == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	date, err := time.Parse(domain.DateFormat, *dateStr)
	if err != nil {
		fatalf("invalid date %q: %v", *dateStr, err)
	}

	d, err := setup(*configPath)
	if err != nil {
		fatalf("setup failed: %v", err)
	}
	defer d.close()

	useCase := getOpenHoursUC.NewUseCase(d.openHoursRepository, d.cache, d.log)

	req := &getOpenHoursUC.Request{
		ArenaID: *arenaID,
		Date:    date,
		NoCache: *noCache,
	}
	if *typeID != 0 {
		req.BookingTypeID = typeID
	}

	resp, err := useCase.Execute(context.Background(), req)
	if err != nil {
		fatalf("open-hours failed: %v", err)
	}

	if len(resp.Intervals) == 0 {
		fmt.Printf("arena %d is closed on %s\n", resp.ArenaID, *dateStr)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "START\tEND\tKIND")
	for _, interval := range resp.Intervals {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			types.NewTimeString(interval.Start),
			types.NewTimeString(interval.End),
			interval.Kind)
	}
	w.Flush()
}

func runSlots(args []string) {
	fs := flag.NewFlagSet("slots", flag.ExitOnError)
	configPath := fs.String("config", "config.toml", "путь к config.toml")
	typeID := fs.Int64("type", 0, "ID типа игры")
	subTypeID := fs.Int64("subtype", 0, "ID подтипа игры")
	dateStr := fs.String("date", "", "дата YYYY-MM-DD")
	includeClosed := fs.Bool("closed", false, "показать закрытые слоты")
	includeBookings := fs.Bool("bookings", false, "показать брони в слотах")
	includePast := fs.Bool("past", false, "включить прошедшие слоты")
	noCache := fs.Bool("no-cache", false, "обойти кеш")
	fs.Parse(args)

	if *typeID == 0 || *dateStr == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	date, err := time.Parse(domain.DateFormat, *dateStr)
	if err != nil {
		fatalf("invalid date %q: %v", *dateStr, err)
	}

	d, err := setup(*configPath)
	if err != nil {
		fatalf("setup failed: %v", err)
	}
	defer d.close()

	openHoursUseCase := getOpenHoursUC.NewUseCase(d.openHoursRepository, d.cache, d.log)
	useCase := getSlotsUC.NewUseCase(
		d.bookingRepository,
		d.bookingTypeRepository,
		openHoursUseCase,
		d.cache,
		d.log,
	)

	req := &getSlotsUC.Request{
		BookingTypeID:      *typeID,
		Date:               date,
		IncludePast:        *includePast,
		IncludeClosedTimes: *includeClosed,
		IncludeBookings:    *includeBookings,
		NoCache:            *noCache,
	}
	if *subTypeID != 0 {
		req.SubTypeID = subTypeID
	}

	resp, err := useCase.Execute(context.Background(), req)
	if err != nil {
		fatalf("slots failed: %v", err)
	}

	if resp.Slots.Len() == 0 {
		fmt.Printf("no slots for type %d on %s\n", resp.BookingTypeID, *dateStr)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSTATUS\tSPOTS\tBOOKINGS")
	for _, key := range resp.Slots.Keys() {
		entry, _ := resp.Slots.Get(key)
		bookings := ""
		for i, ref := range entry.Bookings {
			if i > 0 {
				bookings += ","
			}
			bookings += fmt.Sprintf("#%d(%d)", ref.ID, ref.PlayerCount)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", key, entry.Status, entry.AvailableSpots, bookings)
	}
	w.Flush()
}

func runTypes(args []string) {
	fs := flag.NewFlagSet("types", flag.ExitOnError)
	configPath := fs.String("config", "config.toml", "путь к config.toml")
	arenaID := fs.Int64("arena", 0, "ID арены")
	fs.Parse(args)

	if *arenaID == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	d, err := setup(*configPath)
	if err != nil {
		fatalf("setup failed: %v", err)
	}
	defer d.close()

	bookingTypes, err := d.bookingTypeRepository.ListByArena(context.Background(), *arenaID)
	if err != nil {
		fatalf("types failed: %v", err)
	}

	if len(bookingTypes) == 0 {
		fmt.Printf("no booking types for arena %d\n", *arenaID)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSLOT\tCAPACITY")
	for _, bt := range bookingTypes {
		fmt.Fprintf(w, "%d\t%s\t%dm\t%d\n", bt.ID, bt.Name, bt.SlotLengthMinutes, bt.SlotCapacity)
	}
	w.Flush()
}

func runBooking(args []string) {
	fs := flag.NewFlagSet("booking", flag.ExitOnError)
	configPath := fs.String("config", "config.toml", "путь к config.toml")
	bookingID := fs.Int64("id", 0, "ID брони")
	fs.Parse(args)

	if *bookingID == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	d, err := setup(*configPath)
	if err != nil {
		fatalf("setup failed: %v", err)
	}
	defer d.close()

	booking, err := d.bookingRepository.GetByID(context.Background(), *bookingID)
	if err != nil {
		fatalf("booking failed: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%d\n", booking.ID)
	fmt.Fprintf(w, "ARENA\t%d\n", booking.ArenaID)
	fmt.Fprintf(w, "TYPE\t%d\n", booking.BookingTypeID)
	if booking.SubTypeID != nil {
		fmt.Fprintf(w, "SUBTYPE\t%d\n", *booking.SubTypeID)
	}
	fmt.Fprintf(w, "STARTS\t%s\n", booking.StartsAt.Format(time.RFC3339))
	fmt.Fprintf(w, "SLOTS\t%d\n", booking.SlotCount)
	fmt.Fprintf(w, "PLAYERS\t%d\n", booking.PlayerCount)
	fmt.Fprintf(w, "LOCKED\t%t\n", booking.Locked)
	fmt.Fprintf(w, "STATUS\t%s\n", booking.Status)
	w.Flush()
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}
