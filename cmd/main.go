package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flowtide/firehosegen/build"
	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/provisioner"
	"github.com/flowtide/firehosegen/provisioner/render"
)

func Main() error {
	var rootCmd = &cobra.Command{
		Use:     "firehosegen",
		Version: build.Version(),
	}
	rootCmd.AddCommand(NewCmdRender())
	rootCmd.AddCommand(NewCmdApply())
	rootCmd.AddCommand(NewCmdDestroy())
	rootCmd.AddCommand(NewCmdValidate())
	ctx := newSignalContext()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return err
	}
	return nil
}

func newSignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	go func() {
		<-c
		cancel()
	}()

	return ctx
}

func runE(fn func(context.Context) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd.Context()); err != nil {
			logrus.Error(err)
			return err
		}

		return nil
	}
}

func getConfig(file string) (*config.Config, error) {
	if file != "" {
		return config.Load(file)
	}

	return provisioner.GetConfig()
}

func NewCmdRender() *cobra.Command {
	var file string
	var outDir string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the provisioning document",
		Long:  "resolves the configured delivery stream and prints the provisioning document, or writes it to a directory.",
		RunE: runE(func(ctx context.Context) error {
			cfg, err := getConfig(file)
			if err != nil {
				return err
			}

			chain, err := provisioner.NewChain(ctx, cfg)
			if err != nil {
				return err
			}

			doc := chain.Document()

			if outDir == "" {
				y, err := doc.YAML()
				if err != nil {
					return err
				}

				fmt.Print(string(y))

				return nil
			}

			p := &render.Provisioner{
				Document: doc,
			}

			r, err := p.Render(ctx, outDir)
			if err != nil {
				return err
			}

			for _, f := range r.AddedOrModifiedFiles {
				logrus.Infof("wrote %s", f)
			}

			return nil
		}),
	}
	cmd.Flags().StringVarP(&file, "config", "f", "", "The path to the firehosegen configuration file. Defaults to firehosegen.yaml or firehosegen.toml in the current directory.")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "The directory to write the document to. When empty, the document is printed to stdout as YAML.")

	return cmd
}

func NewCmdApply() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply firehosegen",
		Long:  "resolves the configured delivery stream and delivers it, either via gitops or directly against AWS.",
		RunE: runE(func(ctx context.Context) error {
			chain, err := provisioner.ChainFromEnv(ctx)
			if err != nil {
				return err
			}

			return chain.Apply(ctx)
		}),
	}

	return cmd
}

func NewCmdDestroy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy firehosegen",
		Long:  "deletes the configured delivery stream and the resources declared alongside it.",
		RunE: runE(func(ctx context.Context) error {
			chain, err := provisioner.ChainFromEnv(ctx)
			if err != nil {
				return err
			}

			return chain.Destroy(ctx)
		}),
	}

	return cmd
}

func NewCmdValidate() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long:  "loads the firehosegen configuration and reports the first validation error, without touching AWS.",
		RunE: runE(func(ctx context.Context) error {
			cfg, err := getConfig(file)
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logrus.Infof("configuration for delivery stream %s is valid", cfg.DeliveryStream.Name)

			return nil
		}),
	}
	cmd.Flags().StringVarP(&file, "config", "f", "", "The path to the firehosegen configuration file. Defaults to firehosegen.yaml or firehosegen.toml in the current directory.")

	return cmd
}
