package cli

import (
	"github.com/spf13/cobra"

	"congregate/internal/config"
	"congregate/internal/model"
	"congregate/internal/store"
	apperrors "congregate/pkg/errors"
)

func newInitCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and seed auxiliaries",
		Long:  `Create the SQLite database (applying the schema) and seed the auxiliaries listed in the config file. Running init again is safe; existing auxiliaries are left alone.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer st.Close()

			seeded := 0
			for _, seed := range cfg.Auxiliaries {
				aux := &model.Auxiliary{Slug: seed.Slug, Name: seed.Name, Color: seed.Color}
				err := st.CreateAuxiliary(aux)
				if apperrors.Is(err, apperrors.ErrCodeConflict) {
					logger.Debug("auxiliary exists", "slug", seed.Slug)
					continue
				}
				if err != nil {
					return err
				}
				seeded++
				logger.Info("seeded auxiliary", "slug", seed.Slug, "name", seed.Name)
			}

			logger.Info("database ready", "path", cfg.DatabasePath, "new_auxiliaries", seeded)
			return nil
		},
	}
}
