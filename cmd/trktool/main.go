// trktool is a CLI utility for inspecting, plotting, rendering and generating
// TrackVis tractography files.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mangostaniko/Visualization2-17s/internal/bounds"
	"github.com/mangostaniko/Visualization2-17s/internal/config"
	"github.com/mangostaniko/Visualization2-17s/internal/report"
	"github.com/mangostaniko/Visualization2-17s/internal/synth"
	"github.com/mangostaniko/Visualization2-17s/internal/tracks"
	"github.com/mangostaniko/Visualization2-17s/pkg/formats"
	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "stats":
		cmdStats(args)
	case "hist":
		cmdHist(args)
	case "render":
		cmdRender(args)
	case "generate", "gen":
		cmdGenerate(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`trktool - TrackVis tractography file utility

Usage:
  trktool <command> [options]

Commands:
  info <file.trk>                          Show header information
  stats <file.trk>                         Track length and bounds statistics
  hist [-bins n] [-o out.png] <file.trk>   Plot a histogram of track lengths
  render [options] <file.trk>              Render the file offscreen to an image
  generate [options] <out.trk>             Write synthetic tracks to a file

Examples:
  trktool info bundle.trk
  trktool hist -bins 40 -o lengths.png bundle.trk
  trktool render -mode halo -o bundle.png bundle.trk
  trktool generate -tracks 20 -points 500 -seed 7 synthetic.trk`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trktool info <file.trk>")
		os.Exit(1)
	}

	trk, err := formats.ParseTRKFile(args[0])
	if err != nil {
		fail(err)
	}
	h := &trk.Header

	order := "little-endian"
	if h.ByteOrder == binary.BigEndian {
		order = "big-endian"
	}

	fmt.Printf("File:        %s\n", args[0])
	fmt.Printf("Version:     %d (%s)\n", h.Version, order)
	fmt.Printf("Dimensions:  %d x %d x %d\n", h.Dim[0], h.Dim[1], h.Dim[2])
	fmt.Printf("Voxel size:  %.3f x %.3f x %.3f mm\n", h.VoxelSize[0], h.VoxelSize[1], h.VoxelSize[2])
	fmt.Printf("Origin:      %.3f %.3f %.3f\n", h.Origin[0], h.Origin[1], h.Origin[2])
	fmt.Printf("Voxel order: %s\n", h.VoxelOrder)
	if len(h.ScalarNames) > 0 {
		fmt.Printf("Scalars:     %s\n", strings.Join(h.ScalarNames, ", "))
	}
	if len(h.PropertyNames) > 0 {
		fmt.Printf("Properties:  %s\n", strings.Join(h.PropertyNames, ", "))
	}
	fmt.Printf("Tracks:      %d (header says %d)\n", trk.TrackCount(), h.TrackCount)
	fmt.Printf("Points:      %d\n", trk.TotalPoints())
	fmt.Printf("Vertices:    %d (as triangle strips)\n", trk.TotalPoints()*2)
	if trk.TotalPoints() > config.Default().Render.LargeDatasetThreshold {
		fmt.Println("Preset:      track_large")
	} else {
		fmt.Println("Preset:      track_small")
	}
}

func cmdStats(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trktool stats <file.trk>")
		os.Exit(1)
	}

	metrics, err := report.Measure(tracks.NewTRKSource(args[0]))
	if err != nil {
		fail(err)
	}

	points, err := report.Summarize(report.PointCounts(metrics))
	if err != nil {
		fail(fmt.Errorf("%s: %w", args[0], err))
	}
	lengths, _ := report.Summarize(report.Lengths(metrics))

	res, err := tracks.Load(tracks.NewTRKSource(args[0]), tracks.Options{})
	if err != nil {
		fail(err)
	}

	fmt.Printf("Tracks:          %d (%d non-empty)\n", len(metrics), res.TrackCount)
	fmt.Printf("Points/track:    %s\n", points)
	fmt.Printf("Length/track mm: %s\n", lengths)
	printStats("Bounds (Y-up)", res.Stats)
	fmt.Printf("Dominant axis:   %s\n", axisName(res.DominantAxis))
	fmt.Printf("Scale:           %.6g\n", res.Scale)
}

func printStats(label string, s bounds.Stats) {
	fmt.Printf("%s:\n", label)
	fmt.Printf("  mean:   %s\n", fmtVec(s.Mean))
	fmt.Printf("  min:    %s\n", fmtVec(s.Min))
	fmt.Printf("  max:    %s\n", fmtVec(s.Max))
	fmt.Printf("  extent: %s\n", fmtVec(s.Extent()))
}

func fmtVec(v math.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

func axisName(axis int) string {
	return [...]string{"x", "y", "z"}[axis]
}

func cmdHist(args []string) {
	fs := flag.NewFlagSet("hist", flag.ExitOnError)
	bins := fs.Int("bins", 30, "Number of histogram bins")
	out := fs.String("o", "", "Output image (png, svg or pdf; default <file>_lengths.png)")
	points := fs.Bool("points", false, "Plot points per track instead of length")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trktool hist [-bins n] [-o out.png] [-points] <file.trk>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	metrics, err := report.Measure(tracks.NewTRKSource(path))
	if err != nil {
		fail(err)
	}

	values, xLabel, suffix := report.Lengths(metrics), "length (mm)", "_lengths.png"
	if *points {
		values, xLabel, suffix = report.PointCounts(metrics), "points", "_points.png"
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + suffix
	}

	title := fmt.Sprintf("%s (%d tracks)", filepath.Base(path), len(metrics))
	if err := report.SaveHistogram(outPath, values, *bins, title, xLabel); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s\n", outPath)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	numTracks := fs.Int("tracks", 1, "Number of tracks")
	numPoints := fs.Int("points", 1000, "Points per track")
	seed := fs.Uint64("seed", 0, "Random seed (0 = wall clock)")
	size := fs.Float64("size", 100, "Volume edge length in mm")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trktool generate [-tracks n] [-points n] [-seed s] [-size mm] <out.trk>")
		os.Exit(1)
	}

	trk, usedSeed := generateTRK(*numTracks, *numPoints, *seed, float32(*size))
	if err := formats.WriteTRKFile(fs.Arg(0), trk); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s: %d tracks, %d points, seed %d\n", fs.Arg(0), trk.TrackCount(), trk.TotalPoints(), usedSeed)
}

// generateTRK builds synthetic tracks in a size^3 mm volume. Generated paths
// live in [-1, 1]^3 (Y-up) and are mapped back to the file's Z-up voxmm space.
func generateTRK(numTracks, numPoints int, seed uint64, size float32) (*formats.TRK, uint64) {
	rng, usedSeed := synth.NewRand(seed)
	params := synth.DefaultParams()
	lo := math.Vec3{X: -1, Y: -1, Z: -1}
	hi := math.Vec3{X: 1, Y: 1, Z: 1}

	dim := int16(max(size, 1))
	trk := &formats.TRK{Header: formats.NewTRKHeader([3]int16{dim, dim, dim}, [3]float32{1, 1, 1})}
	half := size / 2
	for t := 0; t < numTracks; t++ {
		positions := synth.Generate(rng, numPoints, lo, hi, params)
		pts := make([]float32, 0, len(positions)*3)
		for _, p := range positions {
			v := p.SwapYZ().Scale(half).Add(math.Vec3{X: half, Y: half, Z: half})
			pts = append(pts, v.X, v.Y, v.Z)
		}
		trk.Tracks = append(trk.Tracks, formats.TRKTrack{Points: pts})
	}
	return trk, usedSeed
}
