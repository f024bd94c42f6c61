package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/questgame/internal/cli"
	"github.com/alexanderramin/questgame/internal/cli/formatter"
	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/repository"
	"github.com/alexanderramin/questgame/internal/server"
	"github.com/alexanderramin/questgame/internal/service"
	"github.com/alexanderramin/questgame/internal/vcs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.SlogLevel()}))

	rules, warnings, err := config.LoadRules(settings.ConfigPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, formatter.StyleYellow.Render("config: "+w))
	}

	database, err := db.OpenDB(settings.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	progressRepo := repository.NewSQLiteProgressRepo(database)
	backlogRepo := repository.NewSQLiteBacklogRepo(database)
	questRepo := repository.NewSQLiteQuestRepo(database)
	inboxRepo := repository.NewSQLiteInboxRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	rt := service.NewRuntime(rules)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if settings.LogUseCases {
		observer = service.NewSlogUseCaseObserver(logger)
	}

	app := &cli.App{
		Inbox:    service.NewInboxService(inboxRepo, uow, rt, observer),
		Triage:   service.NewTriageService(inboxRepo, uow, rt, observer),
		Backlog:  service.NewBacklogService(backlogRepo, uow, rt, observer),
		Quests:   service.NewQuestService(questRepo, uow, rt, observer),
		Events:   service.NewEventService(uow, rt, observer),
		Sync:     service.NewSyncService(progressRepo, vcs.NewGit(settings.RepoDir), uow, rt, observer),
		Status:   service.NewStatusService(progressRepo, questRepo, backlogRepo, inboxRepo, rt),
		Activity: service.NewActivityService(activityRepo),

		DefaultAddr: settings.Addr,
		Now:         rt.Clock,
	}

	snapshot := server.New(server.Deps{
		Status:   app.Status,
		Backlog:  app.Backlog,
		Inbox:    app.Inbox,
		Activity: app.Activity,
		Logger:   logger,
	})
	app.Serve = snapshot.ListenAndServe

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
