package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjoart/paises/internal/countries"
	"github.com/zjoart/paises/pkg/logger"
)

// seedFile is the YAML layout accepted by the seed command
type seedFile struct {
	Paises []countries.Country `yaml:"paises"`
}

// LoadSeed parses a YAML seed document
func LoadSeed(r io.Reader) ([]countries.Country, error) {
	var f seedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return f.Paises, nil
}

// Seed creates every candidate through the batch path and writes a report to out.
// Capitals already stored are only reported; they do not block creation.
func Seed(ctx context.Context, store countries.Store, candidates []countries.Country, workers int, out io.Writer) (*countries.CreateResult, error) {
	for i, c := range candidates {
		if strings.TrimSpace(c.Capital) == "" {
			continue
		}
		taken, err := store.Exists(ctx, countries.FieldCapital, c.Capital)
		if err != nil {
			return nil, fmt.Errorf("seed element %d: %w", i, err)
		}
		if taken {
			fmt.Fprintf(out, "notice #%d (%s): capital %s already present\n", i, c.Name, c.Capital)
		}
	}

	svc := countries.NewService(store, countries.WithWorkers(workers))
	res := svc.CreateMany(ctx, candidates)

	for _, ie := range res.Errors {
		if _, ok := countries.AsValidation(ie.Err); !ok {
			return res, fmt.Errorf("seed element %d: %w", ie.Index, ie.Err)
		}
		fmt.Fprintf(out, "skipped #%d (%s): %v\n", ie.Index, candidates[ie.Index].Name, ie.Err)
	}
	fmt.Fprintf(out, "seeded %d of %d countries\n", len(res.Saved), len(candidates))
	return res, nil
}

// NewSeedCommand loads countries from a YAML file
func NewSeedCommand(root *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load countries from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			candidates, err := LoadSeed(f)
			if err != nil {
				return err
			}

			cfg, backend, err := bootstrap(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer backend.Close()
			defer logger.Sync()

			if err := backend.EnsureTables(cmd.Context()); err != nil {
				return err
			}
			_, err = Seed(cmd.Context(), backend, candidates, cfg.CreateWorkers, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "paises.yaml", "YAML seed file")
	return cmd
}
