// Package ui implements the interactive fitting window: pick images, choose a
// target ratio and mode, preview the transform live, and build or save
// results. It consumes the same facade as the CLI, so a preview always shows
// exactly what a batch run would write.
package ui

import (
	"fmt"
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	imgboxer "github.com/A-Ravioli/img-boxer"
	"github.com/A-Ravioli/img-boxer/pkg/ratio"
	"github.com/A-Ravioli/img-boxer/pkg/transform"
)

const appID = "com.a-ravioli.img-boxer"

// preset ratios offered in the picker, in display order
var presets = []struct {
	Label string
	Ratio ratio.AspectRatio
}{
	{"16:9 (Widescreen)", ratio.Widescreen},
	{"4:3 (Standard)", ratio.Standard},
	{"1:1 (Square)", ratio.Square},
	{"2:1 (Ultrawide)", ratio.Ultrawide},
	{"3:2 (Classic Photo)", ratio.Classic},
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// BoxerApp represents the application
type BoxerApp struct {
	app   fyne.App
	win   fyne.Window
	boxer *imgboxer.Boxer

	files    []string
	images   []image.Image
	selected int
	mosaic   image.Image

	target ratio.AspectRatio
	mode   transform.Mode

	fileList *widget.List
	status   *widget.Label
	preview  *fyne.Container
}

// Run starts the GUI and blocks until the window closes
func Run() {
	a := app.NewWithID(appID)
	ba := &BoxerApp{
		app:      a,
		boxer:    imgboxer.New(),
		selected: -1,
		target:   ratio.Widescreen,
		mode:     transform.Pad,
	}
	ba.buildWindow()
	ba.win.ShowAndRun()
}

func (ba *BoxerApp) buildWindow() {
	ba.win = ba.app.NewWindow("Image Boxer")
	ba.win.Resize(fyne.NewSize(1000, 600))

	ba.status = widget.NewLabel("Add images to begin")
	ba.preview = container.NewGridWithColumns(2)

	ba.fileList = widget.NewList(
		func() int { return len(ba.files) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(baseName(ba.files[id]))
		},
	)
	ba.fileList.OnSelected = func(id widget.ListItemID) {
		ba.selected = id
		ba.mosaic = nil
		ba.updatePreview()
	}

	left := container.NewBorder(
		widget.NewLabel("Images"), nil, nil, nil,
		ba.fileList,
	)

	content := container.NewBorder(
		ba.buildControlPanel(), ba.status, left, nil,
		container.NewScroll(ba.preview),
	)
	ba.win.SetContent(content)
}

func (ba *BoxerApp) buildControlPanel() fyne.CanvasObject {
	labels := make([]string, len(presets))
	for i, p := range presets {
		labels[i] = p.Label
	}
	ratioSelect := widget.NewSelect(labels, func(label string) {
		for _, p := range presets {
			if p.Label == label {
				ba.target = p.Ratio
				break
			}
		}
		ba.mosaic = nil
		ba.updatePreview()
	})
	ratioSelect.SetSelected(presets[0].Label)

	cropCheck := widget.NewCheck("Enable Crop Mode", func(checked bool) {
		if checked {
			ba.mode = transform.Crop
		} else {
			ba.mode = transform.Pad
		}
		ba.mosaic = nil
		ba.updatePreview()
	})

	addButton := widget.NewButton("Add Image", ba.openAddDialog)
	clearButton := widget.NewButton("Clear", func() {
		ba.files = nil
		ba.images = nil
		ba.selected = -1
		ba.mosaic = nil
		ba.fileList.Refresh()
		ba.updatePreview()
		ba.status.SetText("Add images to begin")
	})
	mosaicButton := widget.NewButton("Create Mosaic", ba.createMosaic)
	saveButton := widget.NewButton("Save Result", ba.openSaveDialog)

	return container.NewHBox(
		addButton,
		clearButton,
		widget.NewSeparator(),
		widget.NewLabel("Aspect Ratio:"),
		ratioSelect,
		cropCheck,
		widget.NewSeparator(),
		mosaicButton,
		saveButton,
	)
}

func (ba *BoxerApp) openAddDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ba.win)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		ba.addFile(rc.URI().Path())
	}, ba.win)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

func (ba *BoxerApp) addFile(path string) {
	img, err := ba.boxer.LoadImage(path)
	if err != nil {
		dialog.ShowError(fmt.Errorf("cannot load %s: %w", baseName(path), err), ba.win)
		return
	}

	ba.files = append(ba.files, path)
	ba.images = append(ba.images, img)
	ba.mosaic = nil
	ba.fileList.Refresh()
	ba.fileList.Select(len(ba.files) - 1)
	ba.status.SetText(fmt.Sprintf("%d image(s) loaded", len(ba.files)))
}

// updatePreview rebuilds the preview pane: the mosaic when one has been
// built, otherwise the selected image next to its fitted version.
func (ba *BoxerApp) updatePreview() {
	ba.preview.Objects = nil
	defer ba.preview.Refresh()

	if ba.mosaic != nil {
		ba.preview.Objects = []fyne.CanvasObject{
			previewPane("Mosaic", ba.mosaic),
		}
		return
	}

	if ba.selected < 0 || ba.selected >= len(ba.images) {
		return
	}

	src := ba.images[ba.selected]
	fitted, plan, err := ba.boxer.Fit(src, ba.target, ba.mode)
	if err != nil {
		dialog.ShowError(err, ba.win)
		return
	}

	out := plan.OutputSize()
	ba.preview.Objects = []fyne.CanvasObject{
		previewPane("Original", src),
		previewPane(fmt.Sprintf("%s %s (%dx%d)", ba.target, ba.mode, out.X, out.Y), fitted),
	}
}

func (ba *BoxerApp) createMosaic() {
	if len(ba.images) == 0 {
		dialog.ShowInformation("No Images", "Add images before creating a mosaic.", ba.win)
		return
	}

	m, err := ba.boxer.Mosaic(ba.images, ba.target, ba.mode)
	if err != nil {
		dialog.ShowError(err, ba.win)
		return
	}
	ba.mosaic = m
	ba.updatePreview()
	ba.status.SetText(fmt.Sprintf("Mosaic of %d image(s) ready", len(ba.images)))
}

// openSaveDialog writes the mosaic when one is showing, otherwise the fitted
// version of the selected image.
func (ba *BoxerApp) openSaveDialog() {
	result, name, err := ba.currentResult()
	if err != nil {
		dialog.ShowInformation("Nothing to Save", err.Error(), ba.win)
		return
	}

	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ba.win)
			return
		}
		if wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()

		if err := ba.boxer.SaveImage(result, path); err != nil {
			dialog.ShowError(err, ba.win)
			return
		}
		log.Printf("wrote %s", path)
		ba.status.SetText(fmt.Sprintf("Saved %s", baseName(path)))
	}, ba.win)
	d.SetFileName(name)
	d.Show()
}

func (ba *BoxerApp) currentResult() (image.Image, string, error) {
	if ba.mosaic != nil {
		return ba.mosaic, "mosaic.png", nil
	}
	if ba.selected >= 0 && ba.selected < len(ba.images) {
		fitted, _, err := ba.boxer.Fit(ba.images[ba.selected], ba.target, ba.mode)
		if err != nil {
			return nil, "", err
		}
		return fitted, baseName(ba.files[ba.selected]), nil
	}
	return nil, "", fmt.Errorf("add an image or build a mosaic first")
}

func previewPane(title string, img image.Image) fyne.CanvasObject {
	pic := canvas.NewImageFromImage(img)
	pic.FillMode = canvas.ImageFillContain
	pic.SetMinSize(fyne.NewSize(360, 360))

	label := widget.NewLabel(title)
	label.Alignment = fyne.TextAlignCenter
	return container.NewBorder(label, nil, nil, nil, pic)
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
