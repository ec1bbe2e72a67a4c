// Package loader parses the whitespace-tokenized, line-oriented scene
// description format: a handful of global commands (dimensions, camera,
// background, ray depth, sample count) followed by NEW_PRIMITIVE blocks,
// each a run of primitive-scoped commands ended by a blank line or a
// command the block doesn't recognize.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/geometry"
	"github.com/cbellone/pathtrace/pkg/scene"
)

// Loader reads a scene file into a scene.Scene. Malformed top-level
// commands are logged and skipped; a malformed command inside a
// NEW_PRIMITIVE block is logged and drops that whole primitive, and the
// block's remaining lines are then read as top-level commands. Only an
// I/O error aborts the load.
type Loader struct {
	Logger core.Logger
}

// New creates a Loader that reports warnings through logger.
func New(logger core.Logger) *Loader {
	return &Loader{Logger: logger}
}

type command struct {
	name   string
	fields []string
}

func tokenize(line string) (command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, false
	}
	return command{name: fields[0], fields: fields[1:]}, true
}

// Load reads a scene file from r, builds the Scene, and runs Scene.Init
// (BVH construction + mixture collection) before returning it.
func (l *Loader) Load(r io.Reader) (*scene.Scene, error) {
	sc := &scene.Scene{}
	scanner := bufio.NewScanner(r)

	var pending *command
	for {
		var cmd command
		if pending != nil {
			cmd = *pending
			pending = nil
		} else {
			if !scanner.Scan() {
				break
			}
			c, ok := tokenize(scanner.Text())
			if !ok {
				continue
			}
			cmd = c
		}

		switch cmd.name {
		case "DIMENSIONS":
			w, h, err := parseTwoInts(cmd.fields)
			if err != nil {
				l.warn("DIMENSIONS: %v", err)
				continue
			}
			sc.Camera.Width, sc.Camera.Height = w, h
		case "BG_COLOR":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				l.warn("BG_COLOR: %v", err)
				continue
			}
			sc.Background = v
		case "CAMERA_POSITION":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				l.warn("CAMERA_POSITION: %v", err)
				continue
			}
			sc.Camera.Pos = v
		case "CAMERA_RIGHT":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				l.warn("CAMERA_RIGHT: %v", err)
				continue
			}
			sc.Camera.Right = v
		case "CAMERA_UP":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				l.warn("CAMERA_UP: %v", err)
				continue
			}
			sc.Camera.Up = v
		case "CAMERA_FORWARD":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				l.warn("CAMERA_FORWARD: %v", err)
				continue
			}
			sc.Camera.Forward = v
		case "CAMERA_FOV_X":
			f, err := parseFloat(cmd.fields)
			if err != nil {
				l.warn("CAMERA_FOV_X: %v", err)
				continue
			}
			sc.Camera.FovX = f
		case "RAY_DEPTH":
			n, err := parseInt(cmd.fields)
			if err != nil {
				l.warn("RAY_DEPTH: %v", err)
				continue
			}
			sc.RayDepth = n
		case "SAMPLES":
			n, err := parseInt(cmd.fields)
			if err != nil {
				l.warn("SAMPLES: %v", err)
				continue
			}
			sc.Samples = n
		case "NEW_PRIMITIVE":
			prim, rest, err := l.loadPrimitive(scanner)
			if err != nil {
				l.warn("NEW_PRIMITIVE: %v", err)
			} else {
				sc.Primitives = append(sc.Primitives, prim)
			}
			pending = rest
		default:
			l.warn("unknown command %q", cmd.name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}

	sc.Init()
	return sc, nil
}

// loadPrimitive consumes lines belonging to a single primitive block,
// returning the command that ended the block (nil if it ended at a blank
// line or end of file) so the caller can re-dispatch it.
func (l *Loader) loadPrimitive(scanner *bufio.Scanner) (geometry.Primitive, *command, error) {
	p := geometry.Primitive{Rot: core.Identity(), Material: geometry.MaterialDiffuse}

	for scanner.Scan() {
		cmd, ok := tokenize(scanner.Text())
		if !ok {
			return p, nil, nil
		}

		switch cmd.name {
		case "ELLIPSOID":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				return p, nil, err
			}
			p.Shape, p.A = geometry.ShapeEllipsoid, v
		case "PLANE":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				return p, nil, err
			}
			p.Shape, p.A = geometry.ShapePlane, v
		case "BOX":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				return p, nil, err
			}
			p.Shape, p.A = geometry.ShapeBox, v
		case "TRIANGLE":
			if len(cmd.fields) != 9 {
				return p, nil, fmt.Errorf("TRIANGLE wants 9 numbers, got %d", len(cmd.fields))
			}
			a, err := parseVec3(cmd.fields[0:3])
			if err != nil {
				return p, nil, err
			}
			b, err := parseVec3(cmd.fields[3:6])
			if err != nil {
				return p, nil, err
			}
			c, err := parseVec3(cmd.fields[6:9])
			if err != nil {
				return p, nil, err
			}
			p.Shape, p.A, p.B, p.C = geometry.ShapeTriangle, a, b, c
		case "COLOR":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				return p, nil, err
			}
			p.Color = v
		case "POSITION":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				return p, nil, err
			}
			p.Pos = v
		case "ROTATION":
			q, err := parseQuaternion(cmd.fields)
			if err != nil {
				return p, nil, err
			}
			p.Rot = q
		case "METALLIC":
			p.Material = geometry.MaterialMetallic
		case "DIELECTRIC":
			p.Material = geometry.MaterialDielectric
		case "IOR":
			f, err := parseFloat(cmd.fields)
			if err != nil {
				return p, nil, err
			}
			p.IOR = f
		case "EMISSION":
			v, err := parseVec3(cmd.fields)
			if err != nil {
				return p, nil, err
			}
			p.Emission = v
		default:
			return p, &cmd, nil
		}
	}
	return p, nil, nil
}

func (l *Loader) warn(format string, args ...interface{}) {
	if l.Logger == nil {
		return
	}
	l.Logger.Printf("scene: "+format+"\n", args...)
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) != 3 {
		return core.Vec3{}, fmt.Errorf("want 3 numbers, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.Vec3{X: x, Y: y, Z: z}, nil
}

// parseQuaternion reads X, Y, Z, W in that literal order, matching the
// scene-file field order.
func parseQuaternion(fields []string) (core.Quaternion, error) {
	if len(fields) != 4 {
		return core.Quaternion{}, fmt.Errorf("want 4 numbers, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Quaternion{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Quaternion{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Quaternion{}, err
	}
	w, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return core.Quaternion{}, err
	}
	return core.Quaternion{X: x, Y: y, Z: z, W: w}, nil
}

func parseFloat(fields []string) (float64, error) {
	if len(fields) != 1 {
		return 0, fmt.Errorf("want 1 number, got %d", len(fields))
	}
	return strconv.ParseFloat(fields[0], 64)
}

func parseInt(fields []string) (int, error) {
	if len(fields) != 1 {
		return 0, fmt.Errorf("want 1 number, got %d", len(fields))
	}
	return strconv.Atoi(fields[0])
}

func parseTwoInts(fields []string) (int, int, error) {
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want 2 numbers, got %d", len(fields))
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
