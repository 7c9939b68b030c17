package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/pixel-regions/internal/classify"
	"github.com/ironsheep/pixel-regions/internal/components"
	"github.com/ironsheep/pixel-regions/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_connected_components").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.log.WithTool(params.Name)
	log.Debugw("tool call", "arguments", string(params.Arguments), "cached_images", s.cache.Len())

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Warnw("tool execution failed", "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Fills omitted rule, thresholds and top-N from the server configuration
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/classify/pipeline function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	// Classification and Labeling
	case "image_classify_pixels":
		return s.handleImageClassifyPixels(args)
	case "image_connected_components":
		return s.handleImageConnectedComponents(args)
	case "image_connected_components_sorted":
		return s.handleImageConnectedComponentsSorted(args)
	case "image_label_visualize":
		return s.handleImageLabelVisualize(args)
	case "image_crop_component":
		return s.handleImageCropComponent(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string          `json:"path"`
	Points []imaging.Point `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	samples, err := imaging.SampleColors(img, a.Points)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"samples": samples}, nil
}

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type imageDominantColorsArgs struct {
	Path   string      `json:"path"`
	Count  int         `json:"count"`
	Region *regionArgs `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	var rect image.Rectangle
	if a.Region != nil {
		rect = image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2)
	}
	colors, err := imaging.DominantColors(img, a.Count, rect)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"colors": colors}, nil
}

// === Classification and Labeling Handlers ===

// classifyArgs are shared by every tool that classifies an image first.
type classifyArgs struct {
	Path  string   `json:"path"`
	Rule  string   `json:"rule"`
	Upper *float64 `json:"upper_threshold"`
	Lower *float64 `json:"lower_threshold"`
}

// resolve fills omitted fields from the server configuration.
func (a *classifyArgs) resolve(s *Server) (string, classify.Thresholds) {
	rule := a.Rule
	if rule == "" {
		rule = s.cfg.Classify.Rule
	}
	th := s.cfg.Classify.Thresholds()
	if a.Upper != nil {
		th.Upper = *a.Upper
	}
	if a.Lower != nil {
		th.Lower = *a.Lower
	}
	return rule, th
}

func (s *Server) classifyGrid(a *classifyArgs, maskPath string) (*components.BinaryGrid, string, classify.Thresholds, error) {
	if a.Path == "" {
		return nil, "", classify.Thresholds{}, fmt.Errorf("path is required")
	}
	rule, th := a.resolve(s)
	grid, err := s.pipe.FindPixels(a.Path, rule, th, maskPath)
	if err != nil {
		return nil, "", classify.Thresholds{}, err
	}
	return grid, rule, th, nil
}

type imageClassifyPixelsArgs struct {
	classifyArgs
	OutputPath  string `json:"output_path"`
	IncludeMask bool   `json:"include_mask"`
}

type classifyResult struct {
	Rule       string                `json:"rule"`
	Thresholds classify.Thresholds   `json:"thresholds"`
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	Foreground int                   `json:"foreground_pixels"`
	MaskPath   string                `json:"mask_path,omitempty"`
	Mask       *imaging.EncodedImage `json:"mask,omitempty"`
}

func (s *Server) handleImageClassifyPixels(args json.RawMessage) (interface{}, error) {
	var a imageClassifyPixelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grid, rule, th, err := s.classifyGrid(&a.classifyArgs, a.OutputPath)
	if err != nil {
		return nil, err
	}

	res := &classifyResult{
		Rule:       rule,
		Thresholds: th,
		Width:      grid.Cols(),
		Height:     grid.Rows(),
		Foreground: grid.Foreground(),
		MaskPath:   a.OutputPath,
	}
	if a.IncludeMask {
		if res.Mask, err = imaging.EncodePNG(imaging.MaskImage(grid)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

type imageConnectedComponentsArgs struct {
	classifyArgs
	ReportPath string `json:"report_path"`
}

type componentsResult struct {
	Rule       string                 `json:"rule"`
	Thresholds classify.Thresholds    `json:"thresholds"`
	Count      int                    `json:"component_count"`
	Foreground int                    `json:"foreground_pixels"`
	Components []components.Component `json:"components"`
	Report     string                 `json:"report"`
	ReportPath string                 `json:"report_path,omitempty"`
}

func (s *Server) handleImageConnectedComponents(args json.RawMessage) (interface{}, error) {
	var a imageConnectedComponentsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grid, rule, th, err := s.classifyGrid(&a.classifyArgs, "")
	if err != nil {
		return nil, err
	}
	result, err := s.pipe.Detect(grid, a.ReportPath)
	if err != nil {
		return nil, err
	}

	return &componentsResult{
		Rule:       rule,
		Thresholds: th,
		Count:      result.Count(),
		Foreground: result.Foreground(),
		Components: result.Components,
		Report:     result.Report().String(),
		ReportPath: a.ReportPath,
	}, nil
}

type imageConnectedComponentsSortedArgs struct {
	classifyArgs
	TopN         int    `json:"top_n"`
	ReportPath   string `json:"report_path"`
	TopImagePath string `json:"top_image_path"`
}

type sortedComponentsResult struct {
	componentsResult
	Top          []components.Component `json:"top"`
	TopImagePath string                 `json:"top_image_path,omitempty"`
}

func (s *Server) handleImageConnectedComponentsSorted(args json.RawMessage) (interface{}, error) {
	var a imageConnectedComponentsSortedArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.TopN <= 0 {
		a.TopN = s.cfg.Output.TopN
	}
	grid, rule, th, err := s.classifyGrid(&a.classifyArgs, "")
	if err != nil {
		return nil, err
	}
	res, err := s.pipe.DetectSorted(grid, a.ReportPath, a.TopImagePath, a.TopN)
	if err != nil {
		return nil, err
	}

	return &sortedComponentsResult{
		componentsResult: componentsResult{
			Rule:       rule,
			Thresholds: th,
			Count:      res.Count(),
			Foreground: res.Foreground(),
			Components: res.Sorted,
			Report:     components.NewReport(res.Sorted).String(),
			ReportPath: a.ReportPath,
		},
		Top:          res.Top,
		TopImagePath: a.TopImagePath,
	}, nil
}

type imageLabelVisualizeArgs struct {
	classifyArgs
	Annotate   bool   `json:"annotate"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageLabelVisualize(args json.RawMessage) (interface{}, error) {
	var a imageLabelVisualizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grid, _, _, err := s.classifyGrid(&a.classifyArgs, "")
	if err != nil {
		return nil, err
	}
	result, err := s.pipe.Detect(grid, "")
	if err != nil {
		return nil, err
	}
	img, err := imaging.LabelImage(result.Labels, result.Components, a.Annotate)
	if err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := s.cache.Save(img, a.OutputPath); err != nil {
			return nil, err
		}
	}
	return imaging.EncodePNG(img)
}

type imageCropComponentArgs struct {
	classifyArgs
	ID      int     `json:"id"`
	Padding int     `json:"padding"`
	Scale   float64 `json:"scale"`
}

func (s *Server) handleImageCropComponent(args json.RawMessage) (interface{}, error) {
	var a imageCropComponentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	grid, _, _, err := s.classifyGrid(&a.classifyArgs, "")
	if err != nil {
		return nil, err
	}
	result, err := s.pipe.Detect(grid, "")
	if err != nil {
		return nil, err
	}
	if a.ID < 1 || a.ID > result.Count() {
		return nil, fmt.Errorf("component %d not found: image has %d components", a.ID, result.Count())
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.CropComponent(img, result.Components[a.ID-1], a.Padding, a.Scale)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(cropped)
}
