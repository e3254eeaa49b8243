package scenefile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"scene-raytracer/internal/mathutil"
)

// File mirrors the declarative scene description. Field names carry a type
// prefix: v3_ vector, f_ float, i_ int, s_ string, a_ array, j_ object, b_ bool.
type File struct {
	Eye                *Vec    `json:"v3_eye"`
	EyeOut             *Vec    `json:"v3_eyeOut"`
	Up                 *Vec    `json:"v3_up"`
	ImagePlaneDistance float64 `json:"f_imageplaneDistance"`
	ImagePlaneWidth    float64 `json:"f_imageplaneWidth"`
	ImagePlaneHeight   float64 `json:"f_imageplaneHeight"`
	Width              int     `json:"i_width"`
	Height             int     `json:"i_height"`
	Geometries         []Shape `json:"a_geometries"`
	Lights             []Light `json:"a_lights"`
	SingleSided        bool    `json:"b_singleSided"`
}

type Shape struct {
	Type     string   `json:"s_type"`
	Name     string   `json:"s_name,omitempty"`
	Center   *Vec     `json:"v3_center,omitempty"`
	Radius   float64  `json:"f_radius,omitempty"`
	Pt0      *Vec     `json:"v3_pt0,omitempty"`
	Pt1      *Vec     `json:"v3_pt1,omitempty"`
	Pt2      *Vec     `json:"v3_pt2,omitempty"`
	MinPt    *Vec     `json:"v3_minPt,omitempty"`
	Dim      *Vec     `json:"v3_dim,omitempty"`
	Material Material `json:"j_material"`
}

type Material struct {
	Diffuse *Vec `json:"v3_diffuse"`
	// Specularity is the Phong exponent; absent or -1 means no highlight.
	Specularity *float64 `json:"f_specularity,omitempty"`
}

type Light struct {
	Position  *Vec    `json:"v3_position"`
	Intensity float64 `json:"f_intensity"`
}

// Vec decodes either [x, y, z] or {"x": .., "y": .., "z": ..}.
type Vec mathutil.Vec3

func (v *Vec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var arr []float64
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		if len(arr) != 3 {
			return fmt.Errorf("vector needs 3 components, got %d", len(arr))
		}
		*v = Vec{X: arr[0], Y: arr[1], Z: arr[2]}
		return nil
	}

	var obj struct{ X, Y, Z float64 }
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*v = Vec{X: obj.X, Y: obj.Y, Z: obj.Z}
	return nil
}

func (v Vec) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}
