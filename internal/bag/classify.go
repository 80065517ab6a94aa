package bag

import (
	"strings"

	model "refashion/internal/models"
)

// Suggestion is the bag choice offered after a garment photo is classified
type Suggestion struct {
	Resellable   bool             `json:"resellable"`
	NoDetections bool             `json:"noDetections"`
	Categories   []model.Category `json:"categories"`
	Top          *model.Detection `json:"top,omitempty"`
}

// Classify decides which bags fit a set of detections. An item is resellable only when some
// detection says resellable and none says recyclable; everything else goes to recycling.
func Classify(detections []model.Detection) Suggestion {
	if len(detections) == 0 {
		return Suggestion{NoDetections: true, Categories: []model.Category{}}
	}

	var resellable, recyclable bool
	for _, d := range detections {
		name := strings.ToLower(d.ClassName)
		if strings.Contains(name, "resellable") || name == "resell" {
			resellable = true
		}
		if strings.Contains(name, "recyclable") || name == "recycle" {
			recyclable = true
		}
	}

	top := detections[0]
	if resellable && !recyclable {
		return Suggestion{
			Resellable: true,
			Categories: []model.Category{model.CategoryResell, model.CategoryDonation},
			Top:        &top,
		}
	}
	return Suggestion{
		Categories: []model.Category{model.CategoryRecycle},
		Top:        &top,
	}
}

// ItemFromDetection builds the bag payload for an uploaded file from its top detection
func ItemFromDetection(fileName, preview string, top *model.Detection) model.BagItem {
	item := model.BagItem{FileName: fileName, Preview: preview}
	if top != nil {
		item.DetectedClass = top.ClassName
		item.Confidence = top.Confidence
	}
	return item
}
