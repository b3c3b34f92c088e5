package tool

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

var (
	imageRatios = []interface{}{"1:1", "4:3", "3:4", "16:9", "9:16", "3:2", "2:3", "21:9"}
	videoRatios = []interface{}{"1:1", "4:3", "3:4", "16:9", "9:16"}

	imageResolutions = []interface{}{"1k", "2k", "4k"}
	videoResolutions = []interface{}{"480p", "720p", "1080p"}
)

// Catalog builds the static tool catalog. imageModel and videoModel are
// the configured model defaults; everything else is fixed. The returned
// order is the order tools/list exposes.
func Catalog(imageModel, videoModel string) []ToolSpec {
	return []ToolSpec{
		{
			Name: "text_to_image",
			Description: "Generate images from a text prompt with Jimeng 4.5. " +
				"Creates high-quality images from detailed text descriptions. " +
				"Supports multiple aspect ratios and resolutions; jimeng-4.x models " +
				"can produce several images from a single prompt.",
			Parameters: []ParameterSpec{
				{
					Name:        "prompt",
					Type:        "string",
					Description: "Detailed text description of the image to generate",
					Required:    true,
				},
				{
					Name:        "negative_prompt",
					Type:        "string",
					Description: "Content to avoid in the generated image (optional)",
					Default:     "",
				},
				{
					Name:        "ratio",
					Type:        "string",
					Description: "Image aspect ratio",
					Default:     "1:1",
					Enum:        imageRatios,
				},
				{
					Name:        "resolution",
					Type:        "string",
					Description: "Image resolution",
					Default:     "2k",
					Enum:        imageResolutions,
				},
				{
					Name:        "sample_strength",
					Type:        "number",
					Description: "Detail level (0.0-1.0), higher is more detailed",
					Default:     0.5,
					Minimum:     floatPtr(0.0),
					Maximum:     floatPtr(1.0),
				},
				{
					Name:        "model",
					Type:        "string",
					Description: "Model used for generation (jimeng-4.5 recommended, jimeng-4.1, jimeng-4.0)",
					Default:     imageModel,
				},
			},
		},
		{
			Name: "image_composition",
			Description: "Compose or blend multiple images with Jimeng 4.5. " +
				"Accepts 1-10 input images and combines them following a text prompt. " +
				"Useful for image blending, style transfer, or building composites.",
			Parameters: []ParameterSpec{
				{
					Name:        "prompt",
					Type:        "string",
					Description: "Description of how the images should be composed",
					Required:    true,
				},
				{
					Name:        "images",
					Type:        "array",
					Description: "URLs of the images to compose (1-10 images)",
					Required:    true,
					MinItems:    intPtr(1),
					MaxItems:    intPtr(10),
				},
				{
					Name:        "ratio",
					Type:        "string",
					Description: "Output image aspect ratio",
					Default:     "1:1",
					Enum:        imageRatios,
				},
				{
					Name:        "resolution",
					Type:        "string",
					Description: "Output image resolution",
					Default:     "2k",
					Enum:        imageResolutions,
				},
				{
					Name:        "sample_strength",
					Type:        "number",
					Description: "Detail level (0.0-1.0)",
					Default:     0.5,
					Minimum:     floatPtr(0.0),
					Maximum:     floatPtr(1.0),
				},
				{
					Name:        "model",
					Type:        "string",
					Description: "Model used for composition",
					Default:     imageModel,
				},
			},
		},
		{
			Name: "text_to_video",
			Description: "Generate a video from a text prompt with Jimeng Video 3.0. " +
				"Creates short video clips from text descriptions. " +
				"Supports multiple aspect ratios, resolutions and durations.",
			Parameters: []ParameterSpec{
				{
					Name:        "prompt",
					Type:        "string",
					Description: "Detailed text description of the video to generate",
					Required:    true,
				},
				{
					Name:        "ratio",
					Type:        "string",
					Description: "Video aspect ratio",
					Default:     "1:1",
					Enum:        videoRatios,
				},
				{
					Name:        "resolution",
					Type:        "string",
					Description: "Video resolution",
					Default:     "720p",
					Enum:        videoResolutions,
				},
				{
					Name:        "duration",
					Type:        "integer",
					Description: "Video duration in seconds",
					Default:     5,
					Enum:        []interface{}{5, 10},
				},
				{
					Name:        "model",
					Type:        "string",
					Description: "Model used for video generation",
					Default:     videoModel,
				},
			},
		},
		{
			Name: "image_to_video",
			Description: "Generate a video from images with Jimeng Video 3.0. " +
				"Accepts one or more images as first/last frames and animates them " +
				"following a text prompt. Useful for bringing still images to life.",
			Parameters: []ParameterSpec{
				{
					Name:        "prompt",
					Type:        "string",
					Description: "Description of how the images should be animated",
					Required:    true,
				},
				{
					Name:        "file_paths",
					Type:        "array",
					Description: "URLs of the first/last frame images",
					Required:    true,
					MinItems:    intPtr(1),
				},
				{
					Name:        "ratio",
					Type:        "string",
					Description: "Video aspect ratio",
					Default:     "1:1",
					Enum:        videoRatios,
				},
				{
					Name:        "resolution",
					Type:        "string",
					Description: "Video resolution",
					Default:     "720p",
					Enum:        videoResolutions,
				},
				{
					Name:        "duration",
					Type:        "integer",
					Description: "Video duration in seconds",
					Default:     5,
					Enum:        []interface{}{5, 10},
				},
				{
					Name:        "model",
					Type:        "string",
					Description: "Model used for video generation",
					Default:     videoModel,
				},
			},
		},
	}
}
