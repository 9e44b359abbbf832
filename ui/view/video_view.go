package view

import (
	"image"

	"github.com/soocke/hue-tracker/domain/marker"
	"github.com/soocke/hue-tracker/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerHandlers receive press/move/release positions in video pixels.
type PointerHandlers struct {
	Down func(x, y int)
	Move func(x, y int)
	Up   func(x, y int)
}

// VideoView shows the composited video frame and the colour model patch.
// It owns two LabelWidgets and provides methods to update or reset them.
type VideoView interface {
	SetVideoSize(size image.Point)
	UpdateFrame(img image.Image)
	UpdateModel(img image.Image)
	ResetVideo()
}

type videoView struct {
	videoLabel     *LabelWidget
	modelLabel     *LabelWidget
	size           image.Point
	prevVideoPhoto *Img
	prevModelPhoto *Img
}

const (
	placeholderW = 320
	placeholderH = 180
	modelW       = 96
	modelH       = 96
)

// NewVideoView creates the video and model labels, grids them at row and
// binds the pointer handlers to the video label.
// Layout: video spans columns 0-3; the model patch sits at column 4.
func NewVideoView(row int, h PointerHandlers) VideoView {
	v := &videoView{size: image.Pt(placeholderW, placeholderH)}
	v.prevVideoPhoto = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, placeholderW, placeholderH)))))
	v.prevModelPhoto = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, modelW, modelH)))))
	// No border so event coordinates equal image coordinates.
	v.videoLabel = Label(Image(v.prevVideoPhoto), Borderwidth(0), Cursor("crosshair"))
	v.modelLabel = Label(Image(v.prevModelPhoto), Borderwidth(1), Relief("sunken"))
	Grid(v.videoLabel, Row(row), Column(0), Columnspan(4), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.modelLabel, Row(row), Column(4), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	if h.Down != nil {
		Bind(v.videoLabel, "<ButtonPress-1>", Command(func(e *Event) { h.Down(v.clamp(e.X, e.Y)) }))
	}
	if h.Move != nil {
		Bind(v.videoLabel, "<B1-Motion>", Command(func(e *Event) { h.Move(v.clamp(e.X, e.Y)) }))
	}
	if h.Up != nil {
		Bind(v.videoLabel, "<ButtonRelease-1>", Command(func(e *Event) { h.Up(v.clamp(e.X, e.Y)) }))
	}
	return v
}

// clamp keeps drags that leave the label inside the video area.
func (v *videoView) clamp(x, y int) (int, int) {
	p := marker.Point{X: x, Y: y}.ClampTo(v.size)
	return p.X, p.Y
}

func (v *videoView) SetVideoSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	v.size = size
}

func (v *videoView) UpdateFrame(img image.Image) {
	if v.videoLabel == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if v.prevVideoPhoto != nil {
		v.prevVideoPhoto.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevVideoPhoto = newPhoto
	v.videoLabel.Configure(Image(newPhoto))
}

func (v *videoView) UpdateModel(img image.Image) {
	if v.modelLabel == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(images.ScaleToFit(img, modelW, modelH))
	if v.prevModelPhoto != nil {
		v.prevModelPhoto.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevModelPhoto = newPhoto
	v.modelLabel.Configure(Image(newPhoto))
}

func (v *videoView) ResetVideo() {
	w, h := v.size.X, v.size.Y
	if w <= 0 || h <= 0 {
		w, h = placeholderW, placeholderH
	}
	if v.videoLabel != nil {
		if v.prevVideoPhoto != nil {
			v.prevVideoPhoto.Delete()
		}
		v.prevVideoPhoto = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, w, h)))))
		v.videoLabel.Configure(Image(v.prevVideoPhoto))
	}
	if v.modelLabel != nil {
		if v.prevModelPhoto != nil {
			v.prevModelPhoto.Delete()
		}
		v.prevModelPhoto = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, modelW, modelH)))))
		v.modelLabel.Configure(Image(v.prevModelPhoto))
	}
}
