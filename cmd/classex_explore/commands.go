package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/user/classex_explore_go/internal/analysis"
	"github.com/user/classex_explore_go/internal/config"
	"github.com/user/classex_explore_go/internal/parser"
	"github.com/user/classex_explore_go/internal/report"
)

// errUsage marks command-line misuse that should print the usage text.
var errUsage = errors.New("invalid usage")

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: accepts %d arg(s), received %d", errUsage, n, len(args))
		}
		return nil
	}
}

func newRootCommand(app *App) *cobra.Command {
	v := config.New()
	var configFile string

	root := &cobra.Command{
		Use:           "classex_explore",
		Short:         "Query perturbation, background and power spectrum tables of a cosmology dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return app.configure(cfg)
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	flags.String("format", "html", "output format: html, text, csv, json, pdf, png or chart")
	flags.StringP("output", "o", "", "output file; .zst or .lz4 suffixes compress (default stdout)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Float64("a-s", config.DefaultAmplitudeS, "primordial amplitude A_s")
	flags.Float64("n-s", config.DefaultSpectralIndex, "spectral index n_s")
	flags.Float64("k-pivot", config.DefaultPivotScale, "pivot scale in 1/Mpc")
	flags.Float64("hubble-h", config.DefaultHubbleH, "dimensionless Hubble parameter h")
	flags.Int("sigma-samples", analysis.DefaultSigmaSamples, "wavenumber samples of the sigma-R integral")
	bindFlags(v, root, map[string]string{
		config.KeyFormat:        "format",
		config.KeyOutput:        "output",
		config.KeyLogLevel:      "log-level",
		config.KeyAmplitudeS:    "a-s",
		config.KeySpectralIndex: "n-s",
		config.KeyPivotScale:    "k-pivot",
		config.KeyHubbleH:       "hubble-h",
		config.KeySigmaSamples:  "sigma-samples",
	})

	root.AddCommand(
		newPerturbAtRedshiftCommand(app),
		newPerturbAtWavenumberCommand(app),
		newBackgroundCommand(app),
		newPowerCommand(app),
		newInterpPowerCommand(app),
		newSigmaCommand(app),
		newSurfaceCommand(app),
	)
	return root
}

func bindFlags(v *viper.Viper, root *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, root.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func newPerturbAtRedshiftCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "perturb-z FILE REDSHIFT",
		Short: "Transfer functions of every species at one redshift",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := config.ParseFloatArg("redshift", args[1])
			if err != nil {
				return err
			}
			ds, err := app.loadDataset(args[0])
			if err != nil {
				return err
			}
			table, err := ds.PerturbAtRedshift(z)
			if err != nil {
				return err
			}
			return app.emit(&report.Document{
				Title: fmt.Sprintf("Perturbation vector at z = %g", z),
				Table: table,
			})
		},
	}
}

func newPerturbAtWavenumberCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "perturb-k FILE WAVENUMBER",
		Short: "Transfer function histories of every species at one wavenumber (1/Mpc)",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := config.ParseFloatArg("wavenumber", args[1])
			if err != nil {
				return err
			}
			ds, err := app.loadDataset(args[0])
			if err != nil {
				return err
			}
			table, err := ds.PerturbAtWavenumber(k)
			if err != nil {
				return err
			}
			return app.emit(&report.Document{
				Title: fmt.Sprintf("Perturbation vector at k = %g", k),
				Table: table,
			})
		},
	}
}

func newBackgroundCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "background FILE",
		Short: "Background cosmology at every time sample and today's critical density",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.loadDataset(args[0])
			if err != nil {
				return err
			}
			table, err := ds.Background()
			if err != nil {
				return err
			}
			rho, err := ds.CriticalDensity()
			if err != nil {
				return err
			}
			return app.emit(&report.Document{
				Title: "Background quantities",
				Table: table,
				Notes: []string{fmt.Sprintf("Critical density today: %g (1e10 M_sun/Mpc^3)", rho)},
			})
		},
	}
}

func newPowerCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "power FILE REDSHIFT",
		Short: "Linear power spectra of the density functions at one redshift",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := config.ParseFloatArg("redshift", args[1])
			if err != nil {
				return err
			}
			ds, err := app.loadDataset(args[0])
			if err != nil {
				return err
			}
			table, err := ds.PowerAtRedshift(z, app.cfg.Primordial())
			if err != nil {
				return err
			}
			return app.emit(&report.Document{
				Title: fmt.Sprintf("Linear power spectra at z = %g", z),
				Table: table,
			})
		},
	}
}

func newInterpPowerCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "interp-power FILE REDSHIFT KFILE",
		Short: "Linear power spectra at one redshift, resampled onto the wavenumbers of KFILE",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := config.ParseFloatArg("redshift", args[1])
			if err != nil {
				return err
			}
			ks, err := parser.ParseWavenumberGrid(args[2])
			if err != nil {
				return err
			}
			ds, err := app.loadDataset(args[0])
			if err != nil {
				return err
			}
			power, err := ds.PowerAtRedshift(z, app.cfg.Primordial())
			if err != nil {
				return err
			}
			table, err := analysis.ResamplePower(power, ks)
			if err != nil {
				return err
			}
			return app.emit(&report.Document{
				Title: fmt.Sprintf("Linear power spectra at z = %g", z),
				Table: table,
			})
		},
	}
}

func newSigmaCommand(app *App) *cobra.Command {
	var redshift float64
	cmd := &cobra.Command{
		Use:   "sigma FILE RADIUS",
		Short: "Top-hat smoothed density fluctuation on RADIUS (Mpc/h) of every density function",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := config.ParseFloatArg("radius", args[1])
			if err != nil {
				return err
			}
			ds, err := app.loadDataset(args[0])
			if err != nil {
				return err
			}
			power, err := ds.PowerAtRedshift(redshift, app.cfg.Primordial())
			if err != nil {
				return err
			}
			radius := app.cfg.RadiusMpc(r)
			app.sendStatus("integrating", "radius_mpc", radius, "samples", app.cfg.SigmaSamples)
			results, err := analysis.SigmaR(power, radius, analysis.WithSamples(app.cfg.SigmaSamples))
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Linear power spectra at z = %g smoothed on %g Mpc scales", redshift, radius)
			return app.writeWith(func(w io.Writer) error {
				return report.WriteSigma(w, title, results, app.format)
			})
		},
	}
	cmd.Flags().Float64Var(&redshift, "redshift", 0, "redshift of the power spectrum")
	return cmd
}

func newSurfaceCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "surface FILE TITLE",
		Short: "PNG heatmap of one transfer function over log conformal time and log k",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.loadDataset(args[0])
			if err != nil {
				return err
			}
			surface, err := ds.Surface(args[1])
			if err != nil {
				return err
			}
			img, err := report.CreateSurfaceHeatmap(surface)
			if err != nil {
				return err
			}
			return app.writeWith(func(w io.Writer) error {
				_, err := w.Write(img)
				return err
			})
		},
	}
}
