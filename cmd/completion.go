package cmd

import (
	"sync"

	"github.com/etnz/coinfolio"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
//
// Symbols are predicted from the configured price catalog, or the built-in
// one when it cannot be loaded. The catalog is only loaded when a symbol is
// actually completed.
func Completion() *complete.Command {
	loadSymbols := sync.OnceValue(completionSymbols)
	symbols := complete.PredictFunc(func(string) []string { return loadSymbols() })
	csv := predict.Files("*.csv")

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"backend": predict.Set{"file", "sqlite", "redis", "memory"},
			"path":    predict.Files("*"),
			"key":     predict.Something,
			"prices":  predict.Files("*.json"),
			"v":       predict.Set{"debug", "info", "warn", "error", "off"},
			"raw":     predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"add": {
				Flags: map[string]complete.Predictor{
					"s":     symbols,
					"a":     predict.Something,
					"n":     predict.Something,
					"first": predict.Something,
					"last":  predict.Something,
				},
			},
			"remove": {Args: symbols},
			"delete": {Args: symbols},
			"import": {Args: csv},
			"list":   {},
			"total":  {Flags: map[string]complete.Predictor{"plain": predict.Nothing}},
			"prices": {},
			"export": {Flags: map[string]complete.Predictor{"o": csv}},
			"topic":  {Args: predict.Set(topicNames())},
		},
	}
}

func completionSymbols() []string {
	cfg, err := LoadConfig()
	if err != nil {
		return coinfolio.DefaultCatalog().Symbols()
	}
	c, err := LoadCatalog(cfg)
	if err != nil {
		return coinfolio.DefaultCatalog().Symbols()
	}
	return c.Symbols()
}
