package cmd

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
)

var listServicesDir string

var listServicesCmd = &cobra.Command{
	Use:   "list-services",
	Short: "Lists all services resolvable through the service registry",
	Long: `Scans the codebase for registry.Key[...] definitions to find every service
that modules can resolve at runtime.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := findRegistryKeys(listServicesDir)
		if err != nil {
			return fmt.Errorf("failed to find registry keys: %w", err)
		}

		if len(services) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No services found in the registry.")
			return nil
		}

		return printServices(cmd.OutOrStdout(), services)
	},
}

func init() {
	listServicesCmd.Flags().StringVar(&listServicesDir, "dir", ".", "module directory to scan")
	rootCmd.AddCommand(listServicesCmd)
}

type ServiceInfo struct {
	Key     string
	Type    string
	Package string
}

// findRegistryKeys loads every package under root and collects
// `var X = registry.Key[T]("name")` declarations.
func findRegistryKeys(root string) ([]ServiceInfo, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  root,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var services []ServiceInfo
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				genDecl, ok := decl.(*ast.GenDecl)
				if !ok || genDecl.Tok != token.VAR {
					continue
				}
				for _, spec := range genDecl.Specs {
					valueSpec, ok := spec.(*ast.ValueSpec)
					if !ok {
						continue
					}
					for _, value := range valueSpec.Values {
						if svc, ok := registryKey(pkg, value); ok {
							services = append(services, svc)
						}
					}
				}
			}
		}
	}

	sort.Slice(services, func(i, j int) bool { return services[i].Key < services[j].Key })
	return services, nil
}

// registryKey reports whether expr is a Key[T]("name") conversion.
func registryKey(pkg *packages.Package, expr ast.Expr) (ServiceInfo, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return ServiceInfo{}, false
	}

	// Key[T] is an IndexExpr; IndexListExpr only appears with several type arguments.
	var base ast.Expr
	var typeArg ast.Expr
	switch fun := call.Fun.(type) {
	case *ast.IndexExpr:
		base, typeArg = fun.X, fun.Index
	case *ast.IndexListExpr:
		if len(fun.Indices) != 1 {
			return ServiceInfo{}, false
		}
		base, typeArg = fun.X, fun.Indices[0]
	default:
		return ServiceInfo{}, false
	}

	named, ok := pkg.TypesInfo.TypeOf(base).(*types.Named)
	if !ok || named.Obj().Name() != "Key" || named.Obj().Pkg() == nil ||
		!strings.HasSuffix(named.Obj().Pkg().Path(), "internal/registry") {
		return ServiceInfo{}, false
	}

	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return ServiceInfo{}, false
	}
	key, err := strconv.Unquote(lit.Value)
	if err != nil {
		return ServiceInfo{}, false
	}

	return ServiceInfo{
		Key:     key,
		Type:    types.ExprString(typeArg),
		Package: pkg.PkgPath,
	}, true
}

func printServices(out io.Writer, services []ServiceInfo) error {
	fmt.Fprintln(out, "Available Services in the Registry:")
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tPACKAGE")
	fmt.Fprintln(w, "---\t----\t-------")
	for _, s := range services {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, s.Type, s.Package)
	}
	return w.Flush()
}
