package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestEvaluateCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "embedeval",
		Commands: []*cli.Command{
			{
				Name:   "evaluate",
				Action: evaluateCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{Name: "dataset", Required: true},
					&cli.StringFlag{Name: "db", Aliases: []string{"d"}, Required: true},
					&cli.StringFlag{Name: "run", Required: true},
					&cli.IntFlag{Name: "top-k", Value: 5},
				),
			},
		},
	}

	t.Run("missing dataset flag fails", func(t *testing.T) {
		err := app.Run([]string{"embedeval", "evaluate", "--db", "/tmp/test", "--run", "baseline"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dataset")
	})

	t.Run("missing run flag fails", func(t *testing.T) {
		err := app.Run([]string{"embedeval", "evaluate", "--db", "/tmp/test", "--dataset", "/tmp/ds.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "run")
	})

	t.Run("embedding-host has default value", func(t *testing.T) {
		var hostFlag *cli.StringFlag
		for _, f := range providerFlags() {
			if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "embedding-host" {
				hostFlag = sf
				break
			}
		}
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("model-dir has no default value", func(t *testing.T) {
		var dirFlag *cli.StringFlag
		for _, f := range providerFlags() {
			if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "model-dir" {
				dirFlag = sf
				break
			}
		}
		require.NotNil(t, dirFlag)
		assert.Empty(t, dirFlag.Value)
		assert.False(t, dirFlag.Required)
	})
}

func TestBuildProvider(t *testing.T) {
	newContext := func(modelDir, host, model string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("model-dir", modelDir, "")
		set.String("embedding-host", host, "")
		set.String("embedding-model", model, "")
		return cli.NewContext(nil, set, nil)
	}

	t.Run("remote provider from host and model", func(t *testing.T) {
		provider, err := buildProvider(newContext("", "http://localhost:11434/v1", "embeddinggemma"))
		require.NoError(t, err)
		defer provider.Close()
		assert.Equal(t, "openai/embeddinggemma", provider.Describe())
	})

	t.Run("invalid configuration fails", func(t *testing.T) {
		_, err := buildProvider(newContext("", "", ""))
		assert.Error(t, err)
	})

	t.Run("model-dir must be a directory", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("x"), 0644))

		_, err := buildProvider(newContext(tmpFile, "", ""))
		assert.Error(t, err)
	})
}

func TestGenerateCommandRequiresSources(t *testing.T) {
	app := &cli.App{
		Name: "embedeval",
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Action: generateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true},
					&cli.StringFlag{Name: "generator-host", Value: "http://localhost:11434/v1"},
					&cli.StringFlag{Name: "generator-model", Value: "qwen2.5:3b"},
					&cli.IntFlag{Name: "questions-per-chunk", Value: 2},
					&cli.IntFlag{Name: "chunk-sentences", Value: 3},
				},
			},
		},
	}

	err := app.Run([]string{"embedeval", "generate", "--output", "/tmp/ds.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source")
}

func TestCompareCommandRequiresRuns(t *testing.T) {
	app := &cli.App{
		Name: "embedeval",
		Commands: []*cli.Command{
			{
				Name:   "compare",
				Action: compareCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Aliases: []string{"d"}, Required: true},
					&cli.StringFlag{Name: "results-dir"},
				},
			},
		},
	}

	err := app.Run([]string{"embedeval", "compare", "--db", filepath.Join(t.TempDir(), "db")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run name")
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		require.NoError(t, newApp().Run([]string{"test", "-l", "debug"}))
	})
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
