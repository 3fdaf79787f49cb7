package server

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ironsheep/dimension-tools-mcp/internal/contour"
	"github.com/ironsheep/dimension-tools-mcp/internal/imaging"
	"github.com/ironsheep/dimension-tools-mcp/internal/measure"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_measure_dimensions").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warnf("Tool %s failed: %v", params.Name, err)
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_clear_cache":
		return s.handleImageClearCache(args)

	// Pipeline Stages
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)
	case "image_find_contours":
		return s.handleImageFindContours(args)
	case "image_calibrate_scale":
		return s.handleImageCalibrateScale(args)

	// Measurement
	case "image_measure_dimensions":
		return s.handleImageMeasureDimensions(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path interface{} `json:"path"`
}

// imagePath returns the path argument of a tool call. Anything but a JSON
// string is an *imaging.InputTypeError.
func imagePath(v interface{}) (string, error) {
	p, ok := v.(string)
	if !ok {
		return "", &imaging.InputTypeError{Got: fmt.Sprintf("%T", v)}
	}
	return p, nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	path, err := imagePath(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	path, err := imagePath(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, path)
}

// ClearCacheResult reports what image_clear_cache removed.
type ClearCacheResult struct {
	// Cleared is the evicted path, or "all" when the whole cache was cleared.
	Cleared string `json:"cleared"`
}

type imageClearCacheArgs struct {
	Path *string `json:"path"`
}

func (s *Server) handleImageClearCache(args json.RawMessage) (interface{}, error) {
	var a imageClearCacheArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if a.Path == nil || *a.Path == "" {
		s.cache.Clear()
		return &ClearCacheResult{Cleared: "all"}, nil
	}
	s.cache.Evict(*a.Path)
	return &ClearCacheResult{Cleared: *a.Path}, nil
}

// === Pipeline Stage Handlers ===

type imageEdgeDetectArgs struct {
	Path          interface{} `json:"path"`
	ThresholdLow  int         `json:"threshold_low"`
	ThresholdHigh int         `json:"threshold_high"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = imaging.DefaultCannyLow
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = imaging.DefaultCannyHigh
	}
	path, err := imagePath(a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeDetect(img, a.ThresholdLow, a.ThresholdHigh)
}

// ContourInfo describes one traced contour in pixel units.
type ContourInfo struct {
	Index      int             `json:"index"`
	PointCount int             `json:"point_count"`
	Area       float64         `json:"area"`
	ArcLength  float64         `json:"arc_length"`
	Perimeter  float64         `json:"perimeter"`
	Enclosing  contour.Circle  `json:"enclosing_circle"`
	Points     contour.Contour `json:"points,omitempty"`
}

// FindContoursResult is the output of image_find_contours.
type FindContoursResult struct {
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Count        int           `json:"count"`
	LargestIndex int           `json:"largest_index"`
	Contours     []ContourInfo `json:"contours"`
}

type imageFindContoursArgs struct {
	Path          interface{} `json:"path"`
	IncludePoints bool        `json:"include_points"`
}

// loadContours loads the path argument through the cache and extracts its
// contours.
func (s *Server) loadContours(arg interface{}) (int, int, []contour.Contour, error) {
	path, err := imagePath(arg)
	if err != nil {
		return 0, 0, nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return 0, 0, nil, err
	}
	norm := imaging.CloneColor(img)
	contours, err := s.find(norm)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to extract contours: %w", err)
	}
	return norm.Bounds().Dx(), norm.Bounds().Dy(), contours, nil
}

func (s *Server) handleImageFindContours(args json.RawMessage) (interface{}, error) {
	var a imageFindContoursArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	width, height, contours, err := s.loadContours(a.Path)
	if err != nil {
		return nil, err
	}

	result := &FindContoursResult{
		Width:        width,
		Height:       height,
		Count:        len(contours),
		LargestIndex: -1,
		Contours:     make([]ContourInfo, 0, len(contours)),
	}
	if i, ok := contour.Largest(contours); ok {
		result.LargestIndex = i
	}
	for i, c := range contours {
		info := ContourInfo{
			Index:      i,
			PointCount: len(c),
			Area:       contour.Area(c),
			ArcLength:  contour.ArcLength(c, false),
			Perimeter:  contour.Perimeter(c),
			Enclosing:  contour.MinEnclosingCircle(c),
		}
		if a.IncludePoints {
			info.Points = c
		}
		result.Contours = append(result.Contours, info)
	}
	return result, nil
}

type imageCalibrateScaleArgs struct {
	Path               interface{} `json:"path"`
	ReferenceDimension *float64    `json:"reference_dimension"`
}

// CalibrateResult is the output of image_calibrate_scale.
type CalibrateResult struct {
	measure.Calibration
	OuterBoundary measure.OuterBoundary `json:"outer_boundary"`
}

func (s *Server) handleImageCalibrateScale(args json.RawMessage) (interface{}, error) {
	var a imageCalibrateScaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ReferenceDimension == nil {
		return nil, fmt.Errorf("reference_dimension is required")
	}
	_, _, contours, err := s.loadContours(a.Path)
	if err != nil {
		return nil, err
	}
	cal, err := measure.Calibrate(contours, a.ReferenceDimension)
	if err != nil {
		return nil, err
	}
	return &CalibrateResult{
		Calibration:   *cal,
		OuterBoundary: measure.OuterBoundaryOf(contours, cal.ReferenceIndex),
	}, nil
}

// === Measurement Handlers ===

type imageMeasureDimensionsArgs struct {
	// Path is handed to the pipeline as is, so a non-string value is
	// rejected there as an *imaging.InputTypeError.
	Path               interface{} `json:"path"`
	ReferenceDimension *float64    `json:"reference_dimension"`
	OutputTablePath    string      `json:"output_table_path"`
	OutputImagePath    string      `json:"output_image_path"`
	MinRadius          *float64    `json:"min_radius"`
	MinArcLength       *float64    `json:"min_arc_length"`
}

func (s *Server) handleImageMeasureDimensions(args json.RawMessage) (interface{}, error) {
	var a imageMeasureDimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	thresholds := s.cfg.Thresholds
	if a.MinRadius != nil {
		thresholds.MinRadius = *a.MinRadius
	}
	if a.MinArcLength != nil {
		thresholds.MinArcLength = *a.MinArcLength
	}

	if a.OutputTablePath == "" || a.OutputImagePath == "" {
		base := filepath.Join(s.cfg.OutputDir, "dimensions-"+uuid.NewString())
		if a.OutputTablePath == "" {
			a.OutputTablePath = base + ".csv"
		}
		if a.OutputImagePath == "" {
			a.OutputImagePath = base + ".png"
		}
	}

	style := s.cfg.Style
	return s.measurer.Measure(measure.Request{
		Image:              a.Path,
		ReferenceDimension: a.ReferenceDimension,
		TablePath:          a.OutputTablePath,
		ImagePath:          a.OutputImagePath,
		Thresholds:         thresholds,
		Style:              &style,
	})
}
