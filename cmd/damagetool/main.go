// damagetool replays scripted collisions against a procedural car body and
// reports the resulting dents.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/internal/inspect"
	"github.com/Faultbox/crashsim/internal/logger"
	"github.com/Faultbox/crashsim/internal/scenario"
	"github.com/Faultbox/crashsim/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "view":
		cmdView(args)
	case "box":
		cmdBox(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`damagetool - collision damage scenario utility

Usage:
  damagetool <command> [options]

Commands:
  run [-obj out.obj] [-radius r] [-v] <scenario.yaml>   Apply collisions, print results
  view [-proj top|side|front] [-radius r] <scenario.yaml> Show the dented body in the terminal
  box [-segments n] [-size x,y,z] <out.obj>              Export an undamaged body mesh

Examples:
  damagetool run internal/scenario/testdata/side_swipe.yaml
  damagetool run -obj dented.obj -radius 1.5 internal/scenario/testdata/side_swipe.yaml
  damagetool view -proj side internal/scenario/testdata/side_swipe.yaml`)
}

func loadScenario(path string, radius float64) *scenario.Scenario {
	s, err := scenario.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if radius > 0 {
		s.Damage.DestructionRadius = float32(radius)
	}
	return s
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	objPath := fs.String("obj", "", "Write the deformed mesh as Wavefront OBJ")
	radius := fs.Float64("radius", 0, "Override destruction radius")
	verbose := fs.Bool("v", false, "Log every impact at debug level")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: damagetool run [-obj out.obj] <scenario.yaml>")
		os.Exit(1)
	}

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	s := loadScenario(fs.Arg(0), *radius)
	rep := scenario.Run(s)

	fmt.Printf("Scenario: %s\n", rep.Name)
	fmt.Printf("Body:     %d vertices, %d triangles\n", len(rep.Mesh.Vertices), len(rep.Mesh.Indices)/3)
	fmt.Printf("Radius:   %.2f\n", s.Damage.DestructionRadius)
	fmt.Println()
	fmt.Printf("  %-4s %-4s %-8s %9s %7s %7s %9s\n", "#", "pass", "status", "magnitude", "force", "moved", "max move")
	for _, e := range rep.Events {
		status := "applied"
		if !e.Applied {
			status = "ignored"
		}
		fmt.Printf("  %-4d %-4d %-8s %9.3f %7.3f %7d %9.4f\n",
			e.Index, e.Pass, status, e.Impact.Magnitude, e.Impact.Force,
			e.Result.VerticesMoved, e.Result.MaxDisplacement)
	}
	fmt.Println()

	b := rep.Mesh.Bounds
	fmt.Printf("Applied:  %d of %d collisions\n", rep.Stats.Applied, rep.Stats.Collisions)
	fmt.Printf("Max dent: %.4f\n", rep.MaxDent())
	fmt.Printf("Bounds:   (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)

	if *objPath != "" {
		if err := writeOBJ(*objPath, rep.Mesh); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote:    %s\n", *objPath)
	}
}

func cmdView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	proj := fs.String("proj", "top", "Projection: top, side or front")
	radius := fs.Float64("radius", 0, "Override destruction radius")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: damagetool view [-proj top|side|front] <scenario.yaml>")
		os.Exit(1)
	}

	view := inspect.View{Projection: inspect.Top}
	switch *proj {
	case "top":
	case "side":
		view.Projection = inspect.Side
	case "front":
		view.Projection = inspect.Front
	default:
		fmt.Fprintf(os.Stderr, "Unknown projection: %s\n", *proj)
		os.Exit(1)
	}

	rep := scenario.Run(loadScenario(fs.Arg(0), *radius))
	view.Mesh = rep.Mesh
	view.Rest = rep.Rest
	view.Title = rep.Name

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	inspect.Run(screen, view)
}

func cmdBox(args []string) {
	fs := flag.NewFlagSet("box", flag.ExitOnError)
	segments := fs.Int("segments", 8, "Grid resolution per face")
	var size vec3Flag = vec3Flag(scenario.Default().Body.Size)
	fs.Var(&size, "size", "Box size as x,y,z")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: damagetool box [-segments n] <out.obj>")
		os.Exit(1)
	}

	m := mesh.NewBox("body", math.Vec3(size), *segments)
	if err := writeOBJ(fs.Arg(0), m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d vertices)\n", fs.Arg(0), len(m.Vertices))
}

func writeOBJ(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteOBJ(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// vec3Flag parses "x,y,z".
type vec3Flag math.Vec3

func (v *vec3Flag) String() string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

func (v *vec3Flag) Set(s string) error {
	var x, y, z float32
	if _, err := fmt.Sscanf(s, "%g,%g,%g", &x, &y, &z); err != nil {
		return fmt.Errorf("expected x,y,z: %w", err)
	}
	*v = vec3Flag{X: x, Y: y, Z: z}
	return nil
}
