package main

import (
	"context"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pcwa/abayscheduler/bias"
	"github.com/pcwa/abayscheduler/config"
	"github.com/pcwa/abayscheduler/dataplatform"
	"github.com/pcwa/abayscheduler/hydro"
	"github.com/pcwa/abayscheduler/loader"
	"github.com/pcwa/abayscheduler/optimizer"
	"github.com/pcwa/abayscheduler/rafting"
	"github.com/pcwa/abayscheduler/records"
)

func main() {

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	slog.Info("Starting scheduler...")

	configPath := "config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Read(configPath)
	if err != nil {
		slog.Error("Failed to read config", "error", err)
		os.Exit(1)
	}
	location, err := cfg.Location()
	if err != nil {
		slog.Error("Failed to load time location", "error", err)
		os.Exit(1)
	}

	lookback, err := loader.LoadLookback(cfg.Inputs.LookbackPath)
	if err != nil {
		slog.Error("Failed to load lookback", "error", err)
		os.Exit(1)
	}
	forecast, err := loader.LoadForecast(cfg.Inputs.ForecastPath)
	if err != nil {
		slog.Error("Failed to load forecast", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded inputs", "lookback_hours", len(lookback), "forecast_hours", len(forecast))

	biasCFS := bias.ComputeBiasCFS(lookback)
	slog.Info("Computed inflow bias", "bias_cfs", biasCFS)

	// Initial state comes from the most recent measured hour.
	last := lookback[len(lookback)-1]
	initialElevationFt := last.ElevationFt
	initialGenerationMW := last.OXPHPowerMW
	lastSetpointMW := last.SetpointMW
	if math.IsNaN(lastSetpointMW) {
		lastSetpointMW = initialGenerationMW
	}

	optCfg := optimizer.Config{
		MinElevationFt:     cfg.Optimizer.MinElevationFt,
		FloatBufferFt:      cfg.Optimizer.FloatBufferFt,
		RaftingFloorMW:     cfg.Optimizer.RaftingFloorMW,
		StorageBreakpoints: cfg.Optimizer.StorageBreakpoints,
	}

	times := make([]time.Time, len(forecast))
	for i := range forecast {
		times[i] = forecast[i].Time
	}
	weights := optimizer.SmoothingWeights(times, location, optCfg)

	calendar := rafting.NewCalendar(rafting.WaterYearType(cfg.Rafting.WaterYearType), location)
	var windows []bool
	if cfg.Rafting.Enabled {
		windows = calendar.Flags(times)
	} else {
		windows = make([]bool, len(times))
	}

	for i := range forecast {
		forecast[i].BiasCFS = biasCFS
		forecast[i].SmoothingWeight = weights[i]
		forecast[i].RaftingWindow = windows[i]
	}

	solveTimeout := 120 * time.Second
	if cfg.Optimizer.SolveTimeoutSecs > 0 {
		solveTimeout = time.Duration(cfg.Optimizer.SolveTimeoutSecs) * time.Second
	}
	solveCtx, cancelSolve := context.WithTimeout(context.Background(), solveTimeout)
	defer cancelSolve()

	result, err := optimizer.Solve(solveCtx, forecast, initialElevationFt, initialGenerationMW, optCfg)
	if err != nil {
		slog.Error("Solve failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Solved schedule", "status", result.Status, "objective", result.Objective)

	optimizer.Annotate(result.Rows, initialGenerationMW, lastSetpointMW, hydro.OXPHRampMWPerMin, location)

	for _, row := range result.Rows {
		slog.Debug("Schedule hour",
			"hour_ending", row.Time.In(location).Format(time.RFC3339),
			"generation_mw", row.GenerationMW,
			"setpoint_mw", row.SetpointMW,
			"elevation_ft", row.ElevationFt,
			"change_time", row.SetpointChangeTime,
		)
	}

	supabaseKey := os.Getenv("SUPABASE_KEY")
	dataPlatform, err := dataplatform.New(cfg.DataPlatform.Supabase.Url, supabaseKey, cfg.DataPlatform.Supabase.Schema, cfg.Store.Path)
	if err != nil {
		slog.Error("Failed to create data platform", "error", err)
		os.Exit(1)
	}

	uploadInterval := 5 * time.Second
	if cfg.DataPlatform.UploadIntervalSecs > 0 {
		uploadInterval = time.Duration(cfg.DataPlatform.UploadIntervalSecs) * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	go dataPlatform.Run(ctx, uploadInterval)

	run := records.Run{
		ID:            uuid.New(),
		Time:          time.Now().UTC(),
		Kind:          "optimize",
		WaterYearType: cfg.Rafting.WaterYearType,
		BiasCFS:       biasCFS,
		Status:        string(result.Status),
		Objective:     result.Objective,
		HorizonHours:  len(result.Rows),
	}
	hours := make([]records.RunHour, len(result.Rows))
	for i, row := range result.Rows {
		hours[i] = records.RunHour{
			ID:                 uuid.New(),
			RunID:              run.ID,
			Time:               row.Time,
			GenerationMW:       row.GenerationMW,
			SetpointMW:         row.SetpointMW,
			AvgGenerationMW:    row.AvgGenerationMW,
			ElevationFt:        row.ElevationFt,
			StorageAF:          row.StorageAF,
			OutflowCFS:         row.OutflowCFS,
			SetpointChangeTime: row.SetpointChangeTime,
			RaftingWindow:      row.RaftingWindow,
			ViolatesMin:        row.ViolatesMin,
			ViolatesFloat:      row.ViolatesFloat,
			ViolatesHead:       row.ViolatesHead,
		}
	}
	dataPlatform.Results <- dataplatform.RunResult{Run: run, Hours: hours}

	// Give the platform a couple of upload cycles to drain; anything left in
	// the buffer is retried on the next run.
	time.Sleep(2 * uploadInterval)
	cancel()
	time.Sleep(time.Millisecond * 100)

	slog.Info("Exiting")
	os.Exit(0)
}
