package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"sheetmerge/config"
	"sheetmerge/core"
	"sheetmerge/server"
)

func serveCmd() *cobra.Command {
	var configFile, templateDir, addr string
	var params map[string]string
	var devMode bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the merge operation over HTTP for the job's template",
		RunE: func(cmd *cobra.Command, args []string) error {
			job, _, err := config.LoadConfigBundle(configFile)
			if err != nil {
				return err
			}
			if !devMode {
				gin.SetMode(gin.ReleaseMode)
			}
			tpl, sheet := servedTemplate(job, templateDir, params)
			return server.New(tpl, sheet).Run(addr)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "./test/job.yaml", "Path to job configuration (yaml or toml)")
	cmd.Flags().StringVar(&templateDir, "templates", "./test/templates", "Template directory")
	cmd.Flags().StringToStringVar(&params, "param", nil, "Job parameter override (key=value), repeatable")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Run gin in debug mode")
	return cmd
}

// servedTemplate resolves the job's template path and default sheet with its
// parameters expanded, the same way a merge run does.
func servedTemplate(job *config.MergeConfig, templateDir string, params map[string]string) (string, string) {
	ctx := core.NewJobContext(job, nil, nil, params)
	j := core.NewJob(ctx, templateDir, "")
	return j.TemplatePath(), ctx.Expand(job.Sheet)
}
