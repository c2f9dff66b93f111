// Package cli is the command-line surface over the user service.
//
// Each invocation runs one command, writes a JSON envelope to the output and
// returns an exit code:
//
//	create <id> <first> <last>   create a user
//	get <id> | find <id>         show an active user
//	list <id>...                 show stored users by id, soft-deleted included
//	change <id> <first> <last>   overwrite an existing user
//	delete [-force] <id>         soft-delete, or remove with -force
//	dump                         show every stored record in insertion order
//	health                       report repository health
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
	"usermanager/src/core/usecase"
	"usermanager/src/infra/logger"
)

const usage = "usage: create|change <id> <first> <last> | get|find <id> | list <id>... | delete [-force] <id> | dump | health"

// Runner dispatches commands to the user service.
type Runner struct {
	users  ports.UserService
	repo   ports.UserRepository
	health *usecase.HealthService
	out    io.Writer
	log    *slog.Logger
}

// NewRunner creates a Runner. repo backs the dump command and may be nil,
// in which case dump reports a usage error.
func NewRunner(users ports.UserService, repo ports.UserRepository, health *usecase.HealthService, out io.Writer, log *slog.Logger) *Runner {
	return &Runner{
		users:  users,
		repo:   repo,
		health: health,
		out:    out,
		log:    logger.WithComponent(log, "cli"),
	}
}

// Run executes args[0] with the remaining arguments and returns the exit code.
func (r *Runner) Run(ctx context.Context, args []string) int {
	operationID := logger.OperationIDFromContext(ctx)
	if operationID == "" {
		operationID = uuid.New().String()
		ctx = logger.ContextWithOperationID(ctx, operationID)
	}

	if len(args) == 0 {
		return BadRequest(r.out, usage, operationID)
	}
	command, rest := args[0], args[1:]

	exit := recovered(r.log, r.out, command, operationID, func() int {
		return r.dispatch(ctx, command, rest, operationID)
	})

	switch exit {
	case ExitOK:
		logger.Info(r.log, "command completed", "operation_id", operationID, "command", command)
	case ExitInternal:
		logger.Error(r.log, "command failed", "operation_id", operationID, "command", command, "exit", exit)
	default:
		logger.Warn(r.log, "command rejected", "operation_id", operationID, "command", command, "exit", exit)
	}
	return exit
}

func (r *Runner) dispatch(ctx context.Context, command string, args []string, operationID string) int {
	switch command {
	case "create", "change":
		if len(args) < 2 {
			return BadRequest(r.out, command+" needs an id and a name", operationID)
		}
		id := ParseArg(args[0])
		user := domain.Object(map[string]domain.Value{
			domain.FieldName: domain.String(strings.Join(args[1:], " ")),
		})
		var (
			u   *domain.User
			err error
		)
		if command == "create" {
			u, err = r.users.Create(ctx, id, user)
		} else {
			u, err = r.users.Change(ctx, id, user)
		}
		return r.reply(u, err, operationID)

	case "get", "find":
		if len(args) != 1 {
			return BadRequest(r.out, command+" needs exactly one id", operationID)
		}
		lookup := r.users.Find
		if command == "get" {
			lookup = r.users.Get
		}
		u, err := lookup(ctx, ParseArg(args[0]))
		return r.reply(u, err, operationID)

	case "list":
		ids := make([]domain.Value, len(args))
		for i, a := range args {
			ids[i] = ParseArg(a)
		}
		users, err := r.users.FindAlls(ctx, domain.Array(ids...))
		return r.reply(users, err, operationID)

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		force := fs.Bool("force", false, "remove the record instead of soft-deleting it")
		if err := fs.Parse(args); err != nil {
			return BadRequest(r.out, err.Error(), operationID)
		}
		if fs.NArg() != 1 {
			return BadRequest(r.out, "delete needs exactly one id", operationID)
		}
		u, err := r.users.Delete(ctx, ParseArg(fs.Arg(0)), *force)
		return r.reply(u, err, operationID)

	case "dump":
		if r.repo == nil {
			return BadRequest(r.out, "dump is not available", operationID)
		}
		users, err := r.repo.FindAll(ctx, domain.Undefined())
		return r.reply(users, err, operationID)

	case "health":
		if r.health == nil {
			return OK(r.out, &usecase.HealthStatus{Status: usecase.StatusOK})
		}
		return OK(r.out, r.health.Check(ctx))

	default:
		return BadRequest(r.out, fmt.Sprintf("unknown command %q; %s", command, usage), operationID)
	}
}

func (r *Runner) reply(data any, err error, operationID string) int {
	if err != nil {
		if _, _, ok := errorCode(err); !ok {
			logger.Error(r.log, "command error", "operation_id", operationID, "error", err)
		}
		return FromDomainError(r.out, err, operationID)
	}
	return OK(r.out, data)
}

// ParseArg resolves a command-line argument into a Value: "null" is null,
// finite numbers are numbers and anything else is a string.
func ParseArg(arg string) domain.Value {
	if arg == "null" {
		return domain.Null()
	}
	if n, err := strconv.ParseFloat(arg, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return domain.Number(n)
	}
	return domain.String(arg)
}
