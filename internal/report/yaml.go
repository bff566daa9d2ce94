package report

import (
	"context"
	"os"
	"path/filepath"

	"deriv_bot/internal/helper"
	"deriv_bot/internal/models"
	"deriv_bot/pkg/logger"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type yamlSession struct {
	Terminal       models.Terminal `yaml:"terminal"`
	Rounds         int             `yaml:"rounds"`
	Wins           int             `yaml:"wins"`
	Losses         int             `yaml:"losses"`
	InitialBalance float64         `yaml:"initial_balance"`
	FinalBalance   float64         `yaml:"final_balance"`
	Profit         float64         `yaml:"profit"`
}

type yamlTrade struct {
	models.TradeRecord `yaml:",inline"`
	Label              string `yaml:"label"`
}

type yamlReport struct {
	Session yamlSession `yaml:"session"`
	Ticks   []float64   `yaml:"ticks"`
	Trades  []yamlTrade `yaml:"trades"`
}

// YAMLFile пишет отчёт прогона в файл (перезаписывает).
type YAMLFile struct {
	path string
}

func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

func (y *YAMLFile) Report(_ context.Context, summary *RunSummary, result models.SessionResult) error {
	if y.path == "" {
		return nil
	}
	out, err := Render(summary, result)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(y.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create report dir")
		}
	}
	if err := os.WriteFile(y.path, out, 0o644); err != nil {
		return errors.Wrap(err, "write report")
	}
	logger.Info("[REPORT] written to %s", y.path)
	return nil
}

// Render — YAML-представление прогона.
func Render(summary *RunSummary, result models.SessionResult) ([]byte, error) {
	doc := yamlReport{
		Session: yamlSession{
			Terminal:       result.Terminal,
			Rounds:         result.Rounds,
			Wins:           result.Wins,
			Losses:         result.Losses,
			InitialBalance: result.InitialBalance,
			FinalBalance:   result.FinalBalance,
			Profit:         helper.Diff(result.FinalBalance, result.InitialBalance),
		},
		Ticks:  []float64{},
		Trades: []yamlTrade{},
	}
	if summary != nil {
		doc.Ticks = summary.Ticks()
		for _, tr := range summary.Trades() {
			doc.Trades = append(doc.Trades, yamlTrade{TradeRecord: tr, Label: tr.ContractType.Label()})
		}
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal report")
	}
	return out, nil
}
