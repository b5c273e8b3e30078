package category

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/store"
	"github.com/GustavoCaso/finbot/internal/util"
)

type categoryCommand struct {
	fset   *flag.FlagSet
	action string
	id     string
	name   string
	ctype  string
	color  string
	icon   string
}

func NewCommand() cli.Command {
	return &categoryCommand{}
}

func (c *categoryCommand) Description() string {
	return "Allows to list, add, update and delete categories"
}

func (c *categoryCommand) SetFlags(fs *flag.FlagSet) {
	c.fset = fs
	fs.StringVar(&c.action, "a", "list", "What action to perform. Supported values are: list, add, update, delete")
	fs.StringVar(&c.id, "id", "", "category ID or name for update and delete")
	fs.StringVar(&c.name, "name", "", "category name")
	fs.StringVar(&c.ctype, "type", string(ledger.CategoryExpense), "income, expense or both")
	fs.StringVar(&c.color, "color", "#6B7280", "hex colour used by charts")
	fs.StringVar(&c.icon, "icon", "tag", "icon name")
}

func (c *categoryCommand) Run(env cli.Env) error {
	switch c.action {
	case "list":
		return list(env.Out, env.Store.State().Categories)
	case "add":
		return c.add(env)
	case "update":
		return c.update(env)
	case "delete":
		return c.delete(env)
	default:
		return fmt.Errorf("unsupported action: %s", c.action)
	}
}

func list(out io.Writer, categories []ledger.Category) error {
	for _, category := range categories {
		_, err := fmt.Fprintf(out, "%-4s %s %-16s %-8s %s\n",
			category.ID,
			util.ColorHex("●", category.Color),
			category.Name,
			category.Type,
			category.Icon,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *categoryCommand) add(env cli.Env) error {
	ctype, err := ledger.ParseCategoryType(c.ctype)
	if err != nil {
		return err
	}

	category, err := env.Store.AddCategory(store.CategoryInput{
		Name:  c.name,
		Color: c.color,
		Icon:  c.icon,
		Type:  ctype,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(env.Out, "Added category %s (ID %s)\n", category.Name, category.ID)
	return err
}

func (c *categoryCommand) update(env cli.Env) error {
	current, err := c.target(env)
	if err != nil {
		return err
	}

	var patch ledger.CategoryPatch
	set := 0

	c.fset.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}

		switch fl.Name {
		case "name":
			patch.Name = &c.name
		case "color":
			patch.Color = &c.color
		case "icon":
			patch.Icon = &c.icon
		case "type":
			var ctype ledger.CategoryType
			ctype, err = ledger.ParseCategoryType(c.ctype)
			patch.Type = &ctype
		default:
			return
		}
		set++
	})

	if err != nil {
		return err
	}

	if set == 0 {
		return errors.New("nothing to update: pass at least one of -name, -type, -color or -icon")
	}

	updated, err := env.Store.UpdateCategory(current.ID, patch)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(env.Out, "Updated category %s (ID %s)\n", updated.Name, updated.ID)
	return err
}

func (c *categoryCommand) delete(env cli.Env) error {
	current, err := c.target(env)
	if err != nil {
		return err
	}

	if err = env.Store.DeleteCategory(current.ID); err != nil {
		return err
	}

	_, err = fmt.Fprintf(env.Out, "Deleted category %s (ID %s)\n", current.Name, current.ID)
	return err
}

func (c *categoryCommand) target(env cli.Env) (ledger.Category, error) {
	if c.id == "" {
		return ledger.Category{}, fmt.Errorf("-id is required for %s", c.action)
	}

	return cli.ResolveCategory(env.Store.State().Categories, c.id)
}
