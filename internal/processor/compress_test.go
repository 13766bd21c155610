package processor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestCompressor_Process(t *testing.T) {
	tests := []struct {
		name           string
		imageData      []byte
		config         CompressorConfig
		expectedError  string
		expectedWidth  int
		expectedHeight int
	}{
		{
			name:           "Success - Large JPEG Shrunk",
			imageData:      createTestJPEG(1920, 1080, color.RGBA{R: 255, A: 255}),
			config:         CompressorConfig{MaxWidth: 640, Quality: 80},
			expectedWidth:  640,
			expectedHeight: 360,
		},
		{
			name:           "Success - Small Image Not Enlarged",
			imageData:      createTestJPEG(320, 240, color.RGBA{G: 255, A: 255}),
			config:         CompressorConfig{MaxWidth: 640, Quality: 80},
			expectedWidth:  320,
			expectedHeight: 240,
		},
		{
			name:           "Success - PNG Input",
			imageData:      createTestPNG(800, 400),
			config:         CompressorConfig{MaxWidth: 400, Quality: 50},
			expectedWidth:  400,
			expectedHeight: 200,
		},
		{
			name:           "Defaults - Zero Config",
			imageData:      createTestJPEG(1280, 720, color.RGBA{B: 255, A: 255}),
			config:         CompressorConfig{},
			expectedWidth:  640,
			expectedHeight: 360,
		},
		{
			name:          "Error - Invalid Image Data",
			imageData:     []byte("not-an-image"),
			expectedError: "failed to decode image",
		},
		{
			name:          "Error - Empty Data",
			imageData:     []byte{},
			expectedError: "failed to decode image",
		},
		{
			name:          "Error - Corrupted JPEG",
			imageData:     []byte{0xFF, 0xD8, 0xFF, 0x00, 0x00},
			expectedError: "failed to decode image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompressor(zap.NewNop(), tt.config)
			result, err := c.Process(context.Background(), tt.imageData)

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			img, format, err := image.Decode(bytes.NewReader(result))
			if err != nil {
				t.Fatalf("result is not a valid image: %v", err)
			}
			if format != "jpeg" {
				t.Errorf("expected jpeg output, got %s", format)
			}
			bounds := img.Bounds()
			if bounds.Dx() != tt.expectedWidth || bounds.Dy() != tt.expectedHeight {
				t.Errorf("expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, bounds.Dx(), bounds.Dy())
			}
		})
	}
}

// TestCompressor_Flip checks that flips move a marked corner
func TestCompressor_Flip(t *testing.T) {
	// Top half red, bottom half blue
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if y < 32 {
				src.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				src.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, src); err != nil {
		t.Fatal(err)
	}

	c := NewCompressor(zap.NewNop(), CompressorConfig{MaxWidth: 640, Quality: 95})

	topIsRed := func(data []byte) bool {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		r, _, b, _ := img.At(32, 4).RGBA()
		return r > b
	}

	out, err := c.Process(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !topIsRed(out) {
		t.Error("expected unflipped image to keep red on top")
	}

	c.SetFlipVertical(true)
	if !c.FlipVertical() {
		t.Fatal("expected FlipVertical to report true")
	}
	out, err = c.Process(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topIsRed(out) {
		t.Error("expected vertically flipped image to have blue on top")
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int]string{
		512:             "512B",
		2048:            "2.0KB",
		3 * 1024 * 1024: "3.00MB",
	}
	for in, want := range tests {
		if got := formatSize(in); got != want {
			t.Errorf("formatSize(%d) = %s, want %s", in, got, want)
		}
	}
}

// createTestJPEG generates a simple JPEG image for testing
func createTestJPEG(width, height int, col color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, col)
		}
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 80}); err != nil {
		panic("failed to create test JPEG: " + err.Error())
	}
	return buf.Bytes()
}

func createTestPNG(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		panic("failed to create test PNG: " + err.Error())
	}
	return buf.Bytes()
}
