// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/service"

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/agent"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/internal/scheduler"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"
)

const (
	defaultAgentID    = "queue_agent"
	defaultExporterID = "agent"
	defaultUserID     = "admin"
)

func printComponentSet(out io.Writer, factories component.Factories) {
	extensions := make([]string, 0, len(factories.Extensions))
	for typ := range factories.Extensions {
		extensions = append(extensions, string(typ))
	}
	sort.Strings(extensions)
	fmt.Fprintf(out, "extensions:\n")
	for _, typ := range extensions {
		fmt.Fprintf(out, "\t%s\n", typ)
	}

	exporters := make([]string, 0, len(factories.Exporters))
	for typ := range factories.Exporters {
		exporters = append(exporters, string(typ))
	}
	sort.Strings(exporters)
	fmt.Fprintf(out, "exporters:\n")
	for _, typ := range exporters {
		fmt.Fprintf(out, "\t%s\n", typ)
	}
}

type runner struct {
	set     Settings
	sources ConfigSources
}

// withService loads the configuration, starts a service, runs fn and shuts the service down.
func (r *runner) withService(ctx context.Context, fn func(context.Context, *Service) error) (err error) {
	cp, err := NewDefaultConfigProvider(r.sources)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, cp.Shutdown(ctx)) }()

	cfg, err := cp.Get(ctx, r.set.Factories)
	if err != nil {
		return err
	}

	srv, err := New(ctx, r.set, cfg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, srv.Shutdown(ctx)) }()

	if err = srv.Start(ctx); err != nil {
		return err
	}
	return fn(ctx, srv)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func lookupAgent(srv *Service, idStr string) (agent.Extension, error) {
	id, err := config.NewIDFromString(idStr)
	if err != nil {
		return nil, err
	}
	ext, ok := agent.GetExtension(srv.Host(), id)
	if !ok {
		return nil, fmt.Errorf("agent %q is not configured", id)
	}
	return ext, nil
}

func lookupExporter(srv *Service, idStr string) (component.Exporter, error) {
	id, err := config.NewIDFromString(idStr)
	if err != nil {
		return nil, err
	}
	exp, ok := srv.Exporter(id)
	if !ok {
		return nil, fmt.Errorf("exporter %q is not configured", id)
	}
	return exp, nil
}

// NewCommand constructs a new cobra.Command using the given Settings.
func NewCommand(set Settings) *cobra.Command {
	r := &runner{set: set}
	rootCmd := &cobra.Command{
		Use:          set.BuildInfo.Command,
		Short:        set.BuildInfo.Description,
		Version:      set.BuildInfo.Version,
		SilenceUsage: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringArrayVar(&r.sources.Files, "config", nil, "Configuration file, repeatable. Later files override earlier ones.")
	flags.StringArrayVar(&r.sources.PropertiesFiles, "properties", nil, "Component settings from a properties file, as <path>=<file>.")
	flags.StringArrayVar(&r.sources.Sets, "set", nil, "Override a setting, as <path>::<key>=<value>.")

	rootCmd.AddCommand(
		newComponentsCommand(set),
		newEnqueueCommand(r),
		newExportCommand(r),
		newGetCommand(r),
		newQueueCommand(r),
	)
	return rootCmd
}

func newComponentsCommand(set Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the available component types.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printComponentSet(cmd.OutOrStdout(), set.Factories)
		},
	}
}

func newEnqueueCommand(r *runner) *cobra.Command {
	var (
		agentID string
		reqType string
		userID  string
		deep    bool
	)
	cmd := &cobra.Command{
		Use:   "enqueue <path>...",
		Short: "Build a package for the given paths and add it to the agent queues.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			typ, err := distribution.ParseRequestType(reqType)
			if err != nil {
				return err
			}
			req := distribution.NewRequest(typ, paths...)
			if deep {
				req.Deep = make(map[string]bool, len(paths))
				for _, p := range paths {
					req.Deep[p] = true
				}
			}
			return r.withService(commandContext(cmd), func(ctx context.Context, srv *Service) error {
				ag, err := lookupAgent(srv, agentID)
				if err != nil {
					return err
				}
				resp, err := ag.Execute(ctx, distribution.NewResolver(userID), req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().StringVar(&agentID, "agent", defaultAgentID, "Agent extension executing the request.")
	cmd.Flags().StringVar(&reqType, "type", string(distribution.RequestTypeAdd), "Request type.")
	cmd.Flags().StringVar(&userID, "user", defaultUserID, "Principal the request runs as.")
	cmd.Flags().BoolVar(&deep, "deep", false, "Include the subtree of every path.")
	return cmd
}

func newExportCommand(r *runner) *cobra.Command {
	var (
		exporterID string
		outDir     string
		userID     string
		interval   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "export [path]...",
		Short: "Drain the exporter queue, optionally writing the packages to a directory.",
		RunE: func(cmd *cobra.Command, paths []string) error {
			writer, err := newPackageWriter(outDir)
			if err != nil {
				return err
			}
			req := distribution.NewRequest(distribution.RequestTypePull, paths...)
			rr := distribution.NewResolver(userID)

			return r.withService(commandContext(cmd), func(ctx context.Context, srv *Service) error {
				exp, err := lookupExporter(srv, exporterID)
				if err != nil {
					return err
				}
				cycle := func(ctx context.Context) error {
					return exp.ExportPackages(ctx, rr, req, writer)
				}
				if interval <= 0 {
					if err = cycle(ctx); err != nil {
						return err
					}
					return writeJSON(cmd.OutOrStdout(), writer.summaries)
				}

				sched, err := scheduler.New(srv.Logger(), interval, scheduler.DefaultRetrySettings(), cycle)
				if err != nil {
					return err
				}
				runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				err = sched.Run(runCtx)
				srv.Logger().Info("Export stopped",
					zap.Int64("cycles", sched.Cycles()),
					zap.Int64("failures", sched.Failures()),
					zap.Int64("packages", writer.processed.Load()))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&exporterID, "exporter", defaultExporterID, "Exporter draining the queue.")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory receiving the exported packages.")
	cmd.Flags().StringVar(&userID, "user", defaultUserID, "Principal the export runs as.")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Keep exporting at this interval until interrupted.")
	return cmd
}

func newGetCommand(r *runner) *cobra.Command {
	var (
		exporterID string
		outDir     string
		userID     string
	)
	cmd := &cobra.Command{
		Use:   "get <package-id>",
		Short: "Materialize a queued package without removing it from the queue.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withService(commandContext(cmd), func(ctx context.Context, srv *Service) error {
				exp, err := lookupExporter(srv, exporterID)
				if err != nil {
					return err
				}
				pkg, found, err := exp.GetPackage(ctx, distribution.NewResolver(userID), args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("package %q not found", args[0])
				}
				if outDir != "" {
					writer, err := newPackageWriter(outDir)
					if err != nil {
						return err
					}
					if err = writer.Process(ctx, pkg); err != nil {
						return err
					}
				}
				return writeJSON(cmd.OutOrStdout(), summarize(pkg))
			})
		},
	}
	cmd.Flags().StringVar(&exporterID, "exporter", defaultExporterID, "Exporter owning the queue.")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory receiving the package.")
	cmd.Flags().StringVar(&userID, "user", defaultUserID, "Principal the lookup runs as.")
	return cmd
}

func newQueueCommand(r *runner) *cobra.Command {
	var (
		agentID   string
		queueName string
	)
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List the entries of an agent queue.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withService(commandContext(cmd), func(ctx context.Context, srv *Service) error {
				ag, err := lookupAgent(srv, agentID)
				if err != nil {
					return err
				}
				q, err := ag.Queue(queueName)
				if err != nil {
					return err
				}
				entries, err := q.Entries(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			})
		},
	}
	cmd.Flags().StringVar(&agentID, "agent", defaultAgentID, "Agent extension owning the queue.")
	cmd.Flags().StringVar(&queueName, "queue", queue.DefaultName, "Queue name.")
	return cmd
}
