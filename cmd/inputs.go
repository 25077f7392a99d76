package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/personagni/internal/analysis"
	"github.com/KaramelBytes/personagni/internal/dataset"
	"github.com/KaramelBytes/personagni/internal/logging"
)

func loadTable(ctx context.Context, kind, path string) (*dataset.Table, error) {
	if path == "" {
		return nil, fmt.Errorf("no %s file configured", kind)
	}
	t, err := dataset.Load(path, dataset.Options{Sheet: cfg.Sheet, Logger: logging.FromContext(ctx)})
	if err != nil {
		return nil, fmt.Errorf("load %s dataset: %w", kind, err)
	}
	logging.FromContext(ctx).Debug("dataset loaded",
		slog.String("dataset", kind),
		slog.String("path", path),
		slog.Int("rows", t.Len()))
	return t, nil
}

func matchMode() (dataset.MatchMode, error) {
	return dataset.ParseMatchMode(cfg.MatchMode)
}

// loadInputs reads both datasets named by the configuration.
func loadInputs(ctx context.Context) (analysis.Inputs, error) {
	if err := requireConfig(); err != nil {
		return analysis.Inputs{}, err
	}
	mode, err := matchMode()
	if err != nil {
		return analysis.Inputs{}, err
	}
	pers, err := loadTable(ctx, dataset.DatasetPersonality, cfg.PersonalityFile)
	if err != nil {
		return analysis.Inputs{}, err
	}
	gni, err := loadTable(ctx, dataset.DatasetGNI, cfg.GNIFile)
	if err != nil {
		return analysis.Inputs{}, err
	}
	return analysis.Inputs{Personality: pers, GNI: gni, Countries: cfg.Countries, Match: mode}, nil
}
