// analyze runs the crime analyzers offline, on detections and actions
// that were computed elsewhere. Useful for tuning thresholds against
// recorded footage without running the full service.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/crimewatch/crimewatch/pkg/crime"
	"github.com/crimewatch/crimewatch/pkg/motion"
	"github.com/crimewatch/crimewatch/pkg/nn"
	"github.com/cyclopcam/logs"
)

func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func loadJSON[T any](filename string, out *T) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

type analysisOutput struct {
	Events         []crime.Event      `json:"events"`
	CrimeReport    *crime.CrimeReport `json:"crimeReport"`
	MotionAnalysis *motion.Report     `json:"motionAnalysis,omitempty"`
}

func main() {
	parser := argparse.NewParser("analyze", "Run crime analysis on pre-computed detections")
	detectionsFile := parser.String("d", "detections", &argparse.Options{Help: "JSON file with per-frame object detections", Required: true})
	actionsFile := parser.String("a", "actions", &argparse.Options{Help: "JSON file with action recognition clips", Default: ""})
	framesDir := parser.String("f", "frames", &argparse.Options{Help: "Directory of extracted frames, for motion analysis", Default: ""})
	outFile := parser.String("o", "out", &argparse.Options{Help: "Write the report to this file instead of stdout", Default: ""})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	detections := []nn.FrameDetections{}
	check(loadJSON(*detectionsFile, &detections))

	actions := []nn.ActionClip{}
	if *actionsFile != "" {
		check(loadJSON(*actionsFile, &actions))
	}

	cfg := crime.DefaultConfig()
	filtered := nn.FilterFrames(detections, nn.NewFilterParams())
	out := analysisOutput{
		Events:      crime.EvaluateEvents(filtered, actions, cfg),
		CrimeReport: crime.GenerateCrimeReport(filtered, actions, cfg),
	}

	if *framesDir != "" {
		logger, err := logs.NewLog()
		check(err)
		entries, err := os.ReadDir(*framesDir)
		check(err)
		framePaths := []string{}
		for _, entry := range entries {
			if !entry.IsDir() {
				framePaths = append(framePaths, *framesDir+"/"+entry.Name())
			}
		}
		out.MotionAnalysis = motion.NewAnalyzer(logger, motion.DefaultConfig()).AnalyzeFiles(framePaths)
	}

	raw, err := json.MarshalIndent(&out, "", "\t")
	check(err)
	if *outFile != "" {
		check(os.WriteFile(*outFile, raw, 0660))
	} else {
		fmt.Printf("%v\n", string(raw))
	}
}
