package tool

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(Catalog("jimeng-4.5", "jimeng-video-3.0"))
	require.NoError(t, err)
	return reg
}

func TestRegistry_Normalize(t *testing.T) {
	reg := testRegistry(t)

	t.Run("should fill declared defaults for absent arguments", func(t *testing.T) {
		req, detail := reg.Normalize("text_to_image", map[string]interface{}{
			"prompt": "a cat",
		})
		require.Nil(t, detail)
		require.NotNil(t, req)

		assert.Equal(t, "text_to_image", req.Tool)
		assert.Equal(t, "/v1/images/generations", req.Endpoint)
		assert.Equal(t, 900*time.Second, req.Timeout)
		assert.Equal(t, map[string]interface{}{
			"prompt":          "a cat",
			"negative_prompt": "",
			"ratio":           "1:1",
			"resolution":      "2k",
			"sample_strength": 0.5,
			"model":           "jimeng-4.5",
		}, req.Payload)
	})

	t.Run("should keep caller values over defaults", func(t *testing.T) {
		req, detail := reg.Normalize("text_to_image", map[string]interface{}{
			"prompt":     "a dog",
			"ratio":      "16:9",
			"resolution": "4k",
			"model":      "jimeng-4.1",
		})
		require.Nil(t, detail)
		assert.Equal(t, "16:9", req.Payload["ratio"])
		assert.Equal(t, "4k", req.Payload["resolution"])
		assert.Equal(t, "jimeng-4.1", req.Payload["model"])
	})

	t.Run("should pass undeclared arguments through", func(t *testing.T) {
		req, detail := reg.Normalize("text_to_image", map[string]interface{}{
			"prompt": "a cat",
			"seed":   float64(42),
		})
		require.Nil(t, detail)
		assert.Equal(t, float64(42), req.Payload["seed"])
	})

	t.Run("should not mutate caller arguments", func(t *testing.T) {
		args := map[string]interface{}{"prompt": "a cat"}
		_, detail := reg.Normalize("text_to_image", args)
		require.Nil(t, detail)
		assert.Equal(t, map[string]interface{}{"prompt": "a cat"}, args)
	})

	t.Run("should reject unknown tool", func(t *testing.T) {
		req, detail := reg.Normalize("text_to_music", map[string]interface{}{})
		assert.Nil(t, req)
		require.NotNil(t, detail)
		assert.Equal(t, ErrUnknownTool, detail.Kind)
		assert.Equal(t, "unknown tool: text_to_music", detail.Message)
	})

	t.Run("should reject missing required argument", func(t *testing.T) {
		req, detail := reg.Normalize("text_to_image", map[string]interface{}{})
		assert.Nil(t, req)
		require.NotNil(t, detail)
		assert.Equal(t, ErrValidation, detail.Kind)
		assert.Contains(t, detail.Message, "prompt")
	})

	t.Run("should reject value outside allowed set", func(t *testing.T) {
		_, detail := reg.Normalize("text_to_image", map[string]interface{}{
			"prompt": "a cat",
			"ratio":  "5:7",
		})
		require.NotNil(t, detail)
		assert.Equal(t, ErrValidation, detail.Kind)
		assert.Contains(t, detail.Message, "ratio")
	})

	t.Run("should reject value outside numeric range", func(t *testing.T) {
		_, detail := reg.Normalize("text_to_image", map[string]interface{}{
			"prompt":          "a cat",
			"sample_strength": 1.5,
		})
		require.NotNil(t, detail)
		assert.Equal(t, ErrValidation, detail.Kind)
		assert.Contains(t, detail.Message, "sample_strength")
	})

	t.Run("should reject wrong argument type", func(t *testing.T) {
		_, detail := reg.Normalize("text_to_image", map[string]interface{}{
			"prompt": 123,
		})
		require.NotNil(t, detail)
		assert.Equal(t, ErrValidation, detail.Kind)
		assert.Contains(t, detail.Message, "prompt")
	})

	t.Run("should reject too many composition images", func(t *testing.T) {
		images := make([]interface{}, 11)
		for i := range images {
			images[i] = fmt.Sprintf("https://example.com/%d.png", i)
		}
		_, detail := reg.Normalize("image_composition", map[string]interface{}{
			"prompt": "blend them",
			"images": images,
		})
		require.NotNil(t, detail)
		assert.Equal(t, ErrValidation, detail.Kind)
		assert.Contains(t, detail.Message, "images")
		assert.Contains(t, detail.Message, "10")
	})

	t.Run("should reject empty image list", func(t *testing.T) {
		_, detail := reg.Normalize("image_to_video", map[string]interface{}{
			"prompt":     "animate",
			"file_paths": []interface{}{},
		})
		require.NotNil(t, detail)
		assert.Equal(t, ErrValidation, detail.Kind)
		assert.Contains(t, detail.Message, "file_paths")
	})

	t.Run("should reject duration outside allowed set", func(t *testing.T) {
		_, detail := reg.Normalize("text_to_video", map[string]interface{}{
			"prompt":   "a wave",
			"duration": 7,
		})
		require.NotNil(t, detail)
		assert.Equal(t, ErrValidation, detail.Kind)
		assert.Contains(t, detail.Message, "duration")
	})

	t.Run("should accept full video call", func(t *testing.T) {
		req, detail := reg.Normalize("text_to_video", map[string]interface{}{
			"prompt":   "a wave crashing in slow motion",
			"duration": 10,
		})
		require.Nil(t, detail)
		assert.Equal(t, "/v1/videos/generations", req.Endpoint)
		assert.Equal(t, 600*time.Second, req.Timeout)
		assert.Equal(t, 10, req.Payload["duration"])
		assert.Equal(t, "jimeng-video-3.0", req.Payload["model"])
	})
}

func TestRouteFor(t *testing.T) {
	tests := []struct {
		tool     string
		endpoint string
		timeout  time.Duration
	}{
		{"text_to_image", "/v1/images/generations", 900 * time.Second},
		{"image_composition", "/v1/images/compositions", 660 * time.Second},
		{"text_to_video", "/v1/videos/generations", 600 * time.Second},
		{"image_to_video", "/v1/videos/generations", 600 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			route, ok := RouteFor(tt.tool)
			require.True(t, ok)
			assert.Equal(t, tt.endpoint, route.Endpoint)
			assert.Equal(t, tt.timeout, route.Timeout)
		})
	}

	t.Run("should miss unrouted tool", func(t *testing.T) {
		_, ok := RouteFor("text_to_music")
		assert.False(t, ok)
	})
}
