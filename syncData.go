package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"syncData/mirror"
	"syncData/model"
	"syncData/threading"
	"syncData/util"
)

func version() {
	text := `
####################################################################################################
#  Name        :  syncData
#  Description :  mirror tables of mysql/pgsql/mssql/sqlite into a local sqlite or duckdb file,
#                 incrementally by primary key where possible
#  Updates     :
#      Version     When            What
#      --------    -----------     -----------------------------------------------------------------
#      v1.0.0      2024-03-02      full and key based transfer into sqlite
#      v1.1.0      2024-04-15      checkpoint per batch, resume after interruption
#      v1.2.0      2024-06-20      duckdb target, mssql source, sync report
####################################################################################################
`
	fmt.Println(text)
}

func GetOptions(ctx *cli.Context) (*model.Options, error) {
	opt, err := model.LoadOptions(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	opt.FullSync = ctx.Bool("full-sync")
	opt.IgnoreTables = ctx.StringSlice("ignore-table")
	if ctx.IsSet("batch-size") {
		opt.Mirror.BatchSize = ctx.Int("batch-size")
	}
	if ctx.IsSet("report") {
		opt.Mirror.ReportFile = ctx.String("report")
	}
	if ctx.Bool("verbose") {
		opt.Mirror.Verbose = true
	}
	if err := opt.Init(); err != nil {
		return nil, err
	}
	return opt, nil
}

func runSync(ctx *cli.Context) error {
	opt, err := GetOptions(ctx)
	if err != nil {
		return cli.Exit(err, 2)
	}

	logger, err := util.NewLogger(opt.Mirror.LogFile, opt.Mirror.Verbose)
	if err != nil {
		return cli.Exit(err, 2)
	}
	defer logger.Close()
	defer logger.Flush()

	ignore, err := util.LoadIgnoreList(opt.Mirror.IgnoreFile)
	if err != nil {
		return cli.Exit(err, 2)
	}
	if err := ignore.Add(opt.IgnoreTables...); err != nil {
		logger.Errorf("save ignore list failed: %s", err)
	}

	runCtx, stop := threading.WithSignal(ctx.Context, logger)
	defer stop()

	source, err := openSource(runCtx, opt.Source)
	if err != nil {
		logger.Errorf("%s", model.NewSyncError(model.KindConnection, "", err))
		return cli.Exit(err, 1)
	}
	defer source.Close()
	logger.Infof("source %s connected", opt.Source.Type)

	sink, err := openSink(runCtx, opt.Target)
	if err != nil {
		logger.Errorf("%s", model.NewSyncError(model.KindConnection, "", err))
		return cli.Exit(err, 1)
	}
	defer sink.Close()
	logger.Infof("target %s %s connected", opt.Target.Type, opt.Target.Path)

	m, err := mirror.New(runCtx, opt, source, sink, ignore, logger)
	if err != nil {
		logger.Errorf("%s", err)
		return cli.Exit(err, 1)
	}
	metrics, runErr := m.Run(runCtx)

	if opt.Mirror.ReportFile != "" {
		if err := mirror.WriteReport(opt.Mirror.ReportFile, metrics); err != nil {
			logger.Errorf("write report failed: %s", err)
		} else {
			logger.Infof("sync report: %s", opt.Mirror.ReportFile)
		}
	}
	if runErr != nil {
		logger.Errorf("%s", runErr)
		return cli.Exit(runErr, 1)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "./syncData",
		Usage: "mirror a relational database into a local analytical store",
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "print version",
				Action: func(ctx *cli.Context) error {
					version()
					return nil
				},
			},
			{
				Name:  "sync",
				Usage: "sync every table of the source into the target",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yaml", Usage: "YAML config file with source, target and mirror sections"},
					&cli.BoolFlag{Name: "full-sync", Usage: "Replace every table with a full transfer this run"},
					&cli.StringSliceFlag{Name: "ignore-table", Aliases: []string{"i"}, Usage: "Table never to sync, saved to the ignore file, repeatable"},
					&cli.IntFlag{Name: "batch-size", Aliases: []string{"b"}, Usage: "Rows per batch, overrides mirror.batch_size"},
					&cli.StringFlag{Name: "report", Aliases: []string{"r"}, Usage: "Write the sync report to this file"},
					&cli.BoolFlag{Name: "verbose", Usage: "Debug logging"},
				},
				Action: runSync,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
