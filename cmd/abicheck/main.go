package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	guestbridge "github.com/wippyai/guest-bridge"
	"github.com/wippyai/guest-bridge/contract"
	"github.com/wippyai/guest-bridge/engine"
	"github.com/wippyai/guest-bridge/errors"
	"github.com/wippyai/guest-bridge/guest"
	"github.com/wippyai/guest-bridge/symbols"
)

var stdoutTTY = term.IsTerminal(int(os.Stdout.Fd()))

// paint styles s when stdout is a terminal and passes it through otherwise.
func paint(style lipgloss.Style, s string) string {
	if !stdoutTTY {
		return s
	}
	return style.Render(s)
}

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to adapter core wasm file")
		witText     = flag.Bool("wit", false, "Print the embedded WIT contract")
		diffFile    = flag.String("diff", "", "Path to a WIT file to diff against the built-in contract")
		list        = flag.Bool("list", false, "List contract symbols and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	// The table and the embedded WIT must agree before checking anything else.
	if err := contract.Verify(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: contract self-check failed: %v\n", err)
		os.Exit(1)
	}

	if *witText {
		fmt.Print(contract.WitText())
		return
	}

	if *list {
		printContract()
		return
	}

	if *diffFile != "" {
		if err := diffWit(*diffFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: abicheck -wasm <adapter.wasm>")
		fmt.Fprintln(os.Stderr, "       abicheck -wasm <adapter.wasm> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       abicheck -wit                     (print the embedded contract)")
		fmt.Fprintln(os.Stderr, "       abicheck -diff <contract.wit>")
		fmt.Fprintln(os.Stderr, "       abicheck -list")
		os.Exit(1)
	}

	if *interactive {
		if !stdoutTTY {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*wasmFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := check(*wasmFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// symbolResult is the outcome of resolving one contract symbol.
type symbolResult struct {
	key string          // "namespace#function", or bare namespace for pins
	sig guest.Signature // empty for namespace presence checks
	err error
}

// sweep resolves every contract symbol, collecting all failures instead
// of stopping at the first one like the load hook does.
func sweep(env guest.Env) []symbolResult {
	var out []symbolResult
	for _, d := range symbols.MethodDescriptors() {
		_, err := env.LookupFunc(d.Owner, d.Name, d.Signature)
		out = append(out, symbolResult{key: d.Key(), sig: d.Signature, err: err})
	}
	for _, d := range symbols.InstanceDescriptors() {
		_, err := env.FindInstance(d.Namespace)
		out = append(out, symbolResult{key: d.Namespace, err: err})
	}
	return out
}

func check(wasmFile string) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	eng, err := engine.New(ctx)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close(ctx)

	adapter, err := eng.LoadAdapter(ctx, data)
	if err != nil {
		return fmt.Errorf("load adapter: %w", err)
	}
	env, err := adapter.Env()
	if err != nil {
		return err
	}

	fmt.Printf("Adapter: %s\n", wasmFile)

	version := guestbridge.OnLoad(adapter, nil)
	if version == guestbridge.VersionInvalid {
		fmt.Println(paint(errorStyle, "load hook: failed, no protocol version"))
	} else {
		fmt.Printf("load hook: protocol version 0x%08x\n", version)
	}
	fmt.Println()

	results := sweep(env)
	passed := 0
	var missing []string
	skewed := 0
	for _, r := range results {
		switch {
		case r.err == nil:
			passed++
			fmt.Printf("  %s    %s %s\n", paint(okStyle, "ok"), r.key, r.sig)
		case isMissing(r.err):
			missing = append(missing, r.key)
			fmt.Printf("  %s  %s\n", paint(errorStyle, "MISS"), r.key)
		default:
			skewed++
			fmt.Printf("  %s  %s: %v\n", paint(errorStyle, "SKEW"), r.key, r.err)
		}
	}

	status := fmt.Sprintf("%d/%d contract symbols satisfied", passed, len(results))
	fmt.Println()
	if passed == len(results) {
		fmt.Println(paint(okStyle, status))
	} else {
		fmt.Println(paint(errorStyle, status))
	}

	if len(missing) > 0 {
		return errors.NewMissingSymbolsError(missing)
	}
	if skewed > 0 {
		return fmt.Errorf("%d contract symbol(s) skewed", skewed)
	}
	if version == guestbridge.VersionInvalid {
		return fmt.Errorf("load hook rejected the adapter")
	}
	return nil
}

func isMissing(err error) bool {
	var bridgeErr *errors.Error
	if !stderrors.As(err, &bridgeErr) {
		return false
	}
	return bridgeErr.Kind == errors.KindMissingExport || bridgeErr.Kind == errors.KindMissingNamespace
}

func diffWit(witFile string) error {
	text, err := os.ReadFile(witFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	parsed, err := contract.ParseFuncs(string(text))
	if err != nil {
		return fmt.Errorf("parse wit: %w", err)
	}

	fmt.Printf("WIT: %s\n\n", witFile)

	drifted := 0
	known := map[string]bool{"new": true}
	for _, f := range contract.Funcs() {
		known[f.Name] = true
		sig, ok := parsed[f.Name]
		if !ok {
			fmt.Printf("  missing: %s#%s\n", f.Namespace, f.Name)
			drifted++
			continue
		}
		got := guest.MakeSignature(contract.FlattenTypes(sig.Params), contract.FlattenTypes(sig.Results))
		if want := f.Signature(); got != want {
			fmt.Printf("  skew:    %s flattens to %s, contract wants %s\n", f.Name, got, want)
			drifted++
		}
	}

	var extras []string
	for name := range parsed {
		if !known[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		fmt.Printf("  extra:   %s (not part of the contract)\n", name)
	}

	if drifted > 0 {
		return fmt.Errorf("%d contract function(s) drifted", drifted)
	}
	fmt.Println("WIT text matches the contract table")
	return nil
}

func printContract() {
	fmt.Println(paint(titleStyle, "Contract symbols"))
	for _, f := range contract.Funcs() {
		key := f.Namespace + "#" + f.Name
		fmt.Printf("  %s %s\n", paint(symbolStyle, key), paint(sigStyle, string(f.Signature())))
	}
	fmt.Println()
	fmt.Println(paint(titleStyle, "Durable namespaces"))
	for _, ns := range contract.Namespaces() {
		fmt.Printf("  %s\n", paint(symbolStyle, ns))
	}
}
