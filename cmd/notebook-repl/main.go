// notebook-repl is an interactive demo of the notebook cell model.
// It loads cells from a YAML notebook definition (or creates them on the
// fly), then lets you edit content, metadata, language, and outputs while
// watching the change notifications and identity hash react.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/goccy/go-yaml"

	"github.com/phroun/notebook"
)

// REPL holds the state of the interactive session.
type REPL struct {
	service   *notebook.ModelService
	cells     []*notebook.Cell
	refs      map[int][]*notebook.ModelRef
	defaults  notebook.DocumentDefaults
	transient notebook.TransientOptions
	reader    *bufio.Reader
	nextID    int64
}

// notebookFile is the YAML shape of a notebook definition.
type notebookFile struct {
	Defaults struct {
		CellEditable          bool `yaml:"cellEditable"`
		CellHasExecutionOrder bool `yaml:"cellHasExecutionOrder"`
	} `yaml:"defaults"`
	TransientMetadata []string   `yaml:"transientMetadata"`
	TransientOutputs  bool       `yaml:"transientOutputs"`
	Cells             []cellFile `yaml:"cells"`
}

type cellFile struct {
	Language string         `yaml:"language"`
	Kind     string         `yaml:"kind"`
	Source   string         `yaml:"source"`
	Metadata map[string]any `yaml:"metadata"`
	Outputs  []struct {
		Items []struct {
			Mime string `yaml:"mime"`
			Data string `yaml:"data"`
		} `yaml:"items"`
	} `yaml:"outputs"`
}

func main() {
	fmt.Println("Notebook REPL - Cell Content Model Demo")
	fmt.Println("Type 'help' for available commands, 'quit' to exit")
	fmt.Println()

	repl := &REPL{
		service: notebook.NewModelService(nil),
		refs:    make(map[int][]*notebook.ModelRef),
		reader:  bufio.NewReader(os.Stdin),
		defaults: notebook.DocumentDefaults{
			CellEditable: true,
		},
	}

	if len(os.Args) > 1 {
		if err := repl.loadFile(os.Args[1]); err != nil {
			fmt.Printf("Error loading %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
	}

	for {
		fmt.Print("notebook> ")
		input, err := repl.reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nGoodbye!")
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !repl.handleCommand(input) {
			break
		}
	}

	for _, c := range repl.cells {
		c.Dispose()
	}
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		r.printHelp()

	case "quit", "exit":
		fmt.Println("Goodbye!")
		return false

	case "load":
		r.cmdLoad(args)

	case "new":
		r.cmdNew(args)

	case "list":
		r.cmdList()

	case "show":
		r.cmdShow(args)

	case "value":
		r.withCell(args, func(c *notebook.Cell) {
			fmt.Printf("%q\n", c.Value())
		})

	case "len":
		r.withCell(args, func(c *notebook.Cell) {
			fmt.Printf("%d runes\n", c.TextLength())
		})

	case "range":
		r.withCell(args, func(c *notebook.Cell) {
			fr := c.FullRange()
			fmt.Printf("%d:%d .. %d:%d\n", fr.Start.Line, fr.Start.Column, fr.End.Line, fr.End.Column)
		})

	case "hash":
		r.withCell(args, func(c *notebook.Cell) {
			fmt.Printf("%016x\n", c.HashValue())
		})

	case "lang":
		r.cmdLang(args)

	case "detect":
		r.withCell(args, func(c *notebook.Cell) {
			lang := notebook.DetectLanguage(c.Value())
			if lang == "" {
				fmt.Println("No confident guess")
				return
			}
			fmt.Printf("Detected: %s\n", lang)
		})

	case "replace":
		r.cmdReplace(args)

	case "append":
		r.cmdAppend(args)

	case "meta":
		r.cmdMeta(args)

	case "evalmeta":
		r.withCell(args, func(c *notebook.Cell) {
			m := c.EvaluateMetadata(r.defaults)
			fmt.Printf("editable=%v hasExecutionOrder=%v custom=%v\n",
				*m.Editable, *m.HasExecutionOrder, m.Custom)
		})

	case "outputs":
		r.cmdOutputs(args)

	case "splice":
		r.cmdSplice(args)

	case "clone":
		r.cmdClone(args)

	case "resolve":
		r.cmdResolve(args)

	case "release":
		r.cmdRelease(args)

	case "dispose":
		r.withCell(args, func(c *notebook.Cell) {
			c.Dispose()
			fmt.Println("Disposed")
		})

	default:
		fmt.Printf("Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}

	return true
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  load <file>             Load cells from a YAML notebook definition")
	fmt.Println("  new <lang> <text...>    Create a code cell")
	fmt.Println("  list                    List cells")
	fmt.Println("  show <n>                Print cell source, syntax highlighted")
	fmt.Println("  value <n>               Print full text value")
	fmt.Println("  len <n>                 Print text length in runes")
	fmt.Println("  range <n>               Print the full range")
	fmt.Println("  hash <n>                Print the identity hash")
	fmt.Println("  lang <n> <tag>          Set the language tag")
	fmt.Println("  detect <n>              Guess the language from content")
	fmt.Println("  replace <n> <text...>   Replace the entire content")
	fmt.Println("  append <n> <text...>    Append a line")
	fmt.Println("  meta <n> <key> <bool>   Set a metadata flag (replaces the record)")
	fmt.Println("  evalmeta <n>            Show effective metadata vs document defaults")
	fmt.Println("  outputs <n>             List output records")
	fmt.Println("  splice <n> <start> <del> [text...]  Splice outputs")
	fmt.Println("  clone <n>               Clone the cell (fresh output IDs)")
	fmt.Println("  resolve <n>             Acquire a text model reference")
	fmt.Println("  release <n>             Release the last acquired reference")
	fmt.Println("  dispose <n>             Dispose the cell")
	fmt.Println("  quit                    Exit")
}

func (r *REPL) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var nf notebookFile
	if err := yaml.Unmarshal(data, &nf); err != nil {
		return fmt.Errorf("parsing notebook: %w", err)
	}

	r.defaults = notebook.DocumentDefaults{
		CellEditable:          nf.Defaults.CellEditable,
		CellHasExecutionOrder: nf.Defaults.CellHasExecutionOrder,
	}
	r.transient = notebook.TransientOptions{
		TransientMetadata: nf.TransientMetadata,
		TransientOutputs:  nf.TransientOutputs,
	}

	for _, cf := range nf.Cells {
		kind := notebook.CodeCell
		if cf.Kind == "markup" {
			kind = notebook.MarkupCell
		}

		var outputs []notebook.OutputData
		for _, of := range cf.Outputs {
			var items []notebook.OutputItem
			for _, it := range of.Items {
				items = append(items, notebook.OutputItem{Mime: it.Mime, Data: []byte(it.Data)})
			}
			outputs = append(outputs, notebook.OutputData{Items: items})
		}

		meta := &notebook.CellMetadata{Custom: cf.Metadata}
		if len(cf.Metadata) == 0 {
			meta = nil
		}

		lang := cf.Language
		if lang == "" {
			lang = notebook.DetectLanguage(cf.Source)
		}

		if err := r.addCell(cf.Source, lang, kind, outputs, meta); err != nil {
			return err
		}
	}

	fmt.Printf("Loaded %d cells\n", len(nf.Cells))
	return nil
}

func (r *REPL) addCell(source, lang string, kind notebook.CellKind, outputs []notebook.OutputData, meta *notebook.CellMetadata) error {
	idx := len(r.cells)
	r.nextID++

	cell, err := notebook.NewCell(notebook.CellOptions{
		URI:       fmt.Sprintf("repl:/cell/%d", r.nextID),
		Handle:    r.nextID,
		Source:    source,
		Language:  lang,
		Kind:      kind,
		Outputs:   outputs,
		Metadata:  meta,
		Transient: r.transient,
		Resolver:  r.service,
	})
	if err != nil {
		return err
	}

	cell.OnContentChange(func() {
		fmt.Printf("  [event] cell %d: content changed\n", idx)
	})
	cell.OnMetadataChange(func() {
		fmt.Printf("  [event] cell %d: metadata changed\n", idx)
	})
	cell.OnLanguageChange(func(lang string) {
		fmt.Printf("  [event] cell %d: language changed to %q\n", idx, lang)
	})
	cell.OnOutputsChange(func(splices []notebook.OutputSplice) {
		fmt.Printf("  [event] cell %d: outputs changed (%d splices)\n", idx, len(splices))
	})

	r.service.Add(cell)
	r.cells = append(r.cells, cell)
	return nil
}

func (r *REPL) cmdLoad(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: load <file>")
		return
	}
	if err := r.loadFile(args[0]); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func (r *REPL) cmdNew(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: new <lang> <text...>")
		return
	}
	if err := r.addCell(strings.Join(args[1:], " "), args[0], notebook.CodeCell, nil, nil); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Created cell %d\n", len(r.cells)-1)
}

func (r *REPL) cmdList() {
	if len(r.cells) == 0 {
		fmt.Println("No cells")
		return
	}
	for i, c := range r.cells {
		state := ""
		if c.Disposed() {
			state = " (disposed)"
		}
		fmt.Printf("%3d  %-7s %-12s %4d runes  %d outputs%s\n",
			i, c.Kind(), c.Language(), c.TextLength(), len(c.Outputs()), state)
	}
}

func (r *REPL) cmdShow(args []string) {
	r.withCell(args, func(c *notebook.Cell) {
		src := c.Value()
		if err := quick.Highlight(os.Stdout, src, c.Language(), "terminal256", "monokai"); err != nil {
			fmt.Print(src)
		}
		if !strings.HasSuffix(src, "\n") {
			fmt.Println()
		}
	})
}

func (r *REPL) cmdLang(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: lang <n> <tag>")
		return
	}
	r.withCell(args[:1], func(c *notebook.Cell) {
		c.SetLanguage(args[1])
	})
}

func (r *REPL) cmdReplace(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: replace <n> <text...>")
		return
	}
	r.withCell(args[:1], func(c *notebook.Cell) {
		if err := c.TextBuffer().Replace(c.FullRange(), strings.Join(args[1:], " ")); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	})
}

func (r *REPL) cmdAppend(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: append <n> <text...>")
		return
	}
	r.withCell(args[:1], func(c *notebook.Cell) {
		buf := c.TextBuffer()
		end := c.FullRange().End
		text := strings.Join(args[1:], " ")
		if buf.Len() > 0 {
			text = buf.EOL() + text
		}
		if err := buf.Insert(end, text); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	})
}

func (r *REPL) cmdMeta(args []string) {
	if len(args) != 3 {
		fmt.Println("Usage: meta <n> <key> <true|false>")
		return
	}
	val, err := strconv.ParseBool(args[2])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	r.withCell(args[:1], func(c *notebook.Cell) {
		m := c.Metadata()
		switch args[1] {
		case notebook.KeyEditable:
			m.Editable = notebook.Bool(val)
		case notebook.KeyHasExecutionOrder:
			m.HasExecutionOrder = notebook.Bool(val)
		case notebook.KeyBreakpointMargin:
			m.BreakpointMargin = notebook.Bool(val)
		case notebook.KeyInputCollapsed:
			m.InputCollapsed = notebook.Bool(val)
		case notebook.KeyOutputCollapsed:
			m.OutputCollapsed = notebook.Bool(val)
		default:
			if m.Custom == nil {
				m.Custom = make(map[string]any)
			}
			m.Custom[args[1]] = val
		}
		c.SetMetadata(m)
	})
}

func (r *REPL) cmdOutputs(args []string) {
	r.withCell(args, func(c *notebook.Cell) {
		outs := c.Outputs()
		if len(outs) == 0 {
			fmt.Println("No outputs")
			return
		}
		for i, o := range outs {
			fmt.Printf("%3d  %s\n", i, o.ID)
			for _, item := range o.Items {
				fmt.Printf("       %-20s %q\n", item.Mime, string(item.Data))
			}
		}
	})
}

func (r *REPL) cmdSplice(args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: splice <n> <start> <deleteCount> [text...]")
		return
	}
	start, err1 := strconv.Atoi(args[1])
	del, err2 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil {
		fmt.Println("Usage: splice <n> <start> <deleteCount> [text...]")
		return
	}
	r.withCell(args[:1], func(c *notebook.Cell) {
		var inserts []*notebook.Output
		if len(args) > 3 {
			inserts = append(inserts, notebook.NewOutput(notebook.OutputItem{
				Mime: "text/plain",
				Data: []byte(strings.Join(args[3:], " ")),
			}))
		}
		err := c.SpliceOutputs([]notebook.OutputSplice{{
			Start:       start,
			DeleteCount: del,
			Outputs:     inserts,
		}})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	})
}

func (r *REPL) cmdClone(args []string) {
	r.withCell(args, func(c *notebook.Cell) {
		data := notebook.CloneCell(c)
		if err := r.addCell(data.Source, data.Language, data.Kind, data.Outputs, &data.Metadata); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Created cell %d\n", len(r.cells)-1)
	})
}

func (r *REPL) cmdResolve(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: resolve <n>")
		return
	}
	idx, ok := r.cellIndex(args[0])
	if !ok {
		return
	}
	ref, err := r.cells[idx].ResolveTextModelRef(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	r.refs[idx] = append(r.refs[idx], ref)
	fmt.Printf("Acquired reference (%d refs held, buffer %d runes)\n",
		r.service.Refs(r.cells[idx].URI()), ref.Buffer().Len())
}

func (r *REPL) cmdRelease(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: release <n>")
		return
	}
	idx, ok := r.cellIndex(args[0])
	if !ok {
		return
	}
	held := r.refs[idx]
	if len(held) == 0 {
		fmt.Println("No references held")
		return
	}
	held[len(held)-1].Release()
	r.refs[idx] = held[:len(held)-1]
	fmt.Printf("Released (%d refs remain)\n", r.service.Refs(r.cells[idx].URI()))
}

func (r *REPL) cellIndex(arg string) (int, bool) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= len(r.cells) {
		fmt.Printf("No such cell: %s\n", arg)
		return 0, false
	}
	return idx, true
}

func (r *REPL) withCell(args []string, fn func(*notebook.Cell)) {
	if len(args) < 1 {
		fmt.Println("Missing cell number")
		return
	}
	idx, ok := r.cellIndex(args[0])
	if !ok {
		return
	}
	fn(r.cells[idx])
}
