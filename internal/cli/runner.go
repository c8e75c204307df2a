package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/tidy/internal/app"
	"github.com/idilsaglam/tidy/internal/model"
	"github.com/idilsaglam/tidy/internal/store/jsonstore"
	"github.com/idilsaglam/tidy/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Dir string // directory holding the state file
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: tidy add <title...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "done":
		return doSetCompleted(opt, a, true)

	case "undone":
		return doSetCompleted(opt, a, false)

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: tidy rm <id>")
			return 2
		}
		id, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("rm: not a number: " + a[0])
			return 2
		}
		return doRemove(opt, id)

	case "clear":
		return doClear(opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`tidy - a tiny todo list

Usage:
  tidy [-dir <path>] <subcommand> [args]

Subcommands:
  add <title...>     Add a new item (title can be multiple words)
  ls                 List items (interactive TUI)
  done <id>          Mark the item with the given identifier completed
  undone <id>        Mark the item with the given identifier not completed
  rm <id>            Remove the item with the given identifier
  clear              Remove all completed items
  help               Show this help

Examples:
  tidy add "Buy milk"
  tidy ls
  tidy done 2
  tidy rm 3
`)
}

// ---------------------------------------------------
// Subcommands: open the store, dispatch, report.
// ---------------------------------------------------

func doList(opt Options) int {
	store := jsonstore.Open(opt.Dir)
	// A state file that does not decode must not block the session; it is
	// logged and the session starts fresh.
	d := app.New(store.LoadOrInitial(), store)
	if err := ui.Run(d, store); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doAdd(opt Options, title string) int {
	store := jsonstore.Open(opt.Dir)
	st, err := store.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	d := app.New(st, store)
	d.Dispatch(model.UpdateField{Title: title})
	st = d.Dispatch(model.Add{})
	ui.OK(fmt.Sprintf("added (id %d)", st.Todos[0].ID))
	return 0
}

func doSetCompleted(opt Options, a []string, done bool) int {
	verb := "done"
	if !done {
		verb = "undone"
	}
	if len(a) != 1 {
		ui.Fail(fmt.Sprintf("usage: tidy %s <id>", verb))
		return 2
	}
	id, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(verb + ": not a number: " + a[0])
		return 2
	}

	store := jsonstore.Open(opt.Dir)
	st, err := store.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	target, ok := findByID(st.Todos, id)
	if !ok {
		ui.Fail(fmt.Sprintf("no item with identifier %d", id))
		ui.Muted("Hint: run `tidy ls` to see identifiers")
		return 2
	}
	d := app.New(st, store)
	if done {
		d.Dispatch(model.Complete{Todo: target})
	} else {
		d.Dispatch(model.Uncomplete{Todo: target})
	}
	ui.OK(verb)
	return 0
}

func doRemove(opt Options, id int) int {
	store := jsonstore.Open(opt.Dir)
	st, err := store.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	target, ok := findByID(st.Todos, id)
	if !ok {
		ui.Fail(fmt.Sprintf("no item with identifier %d", id))
		ui.Muted("Hint: run `tidy ls` to see identifiers")
		return 2
	}
	d := app.New(st, store)
	d.Dispatch(model.Delete{Todo: target})
	ui.OK("removed")
	return 0
}

func doClear(opt Options) int {
	store := jsonstore.Open(opt.Dir)
	st, err := store.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	before := len(st.Todos)
	st = app.New(st, store).Dispatch(model.ClearCompleted{})
	ui.OK(fmt.Sprintf("cleared %d completed", before-len(st.Todos)))
	return 0
}

func findByID(todos []model.Todo, id int) (model.Todo, bool) {
	for _, t := range todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}
