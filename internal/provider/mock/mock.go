package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/imaging"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/landmark"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

// Detector implementa provider.LandmarkDetector para testes e desenvolvimento
type Detector struct {
	geometry landmark.Geometry
}

var _ provider.LandmarkDetector = (*Detector)(nil)

// NewDetector cria um detector que sempre devolve a geometria média (oval)
func NewDetector() *Detector {
	return &Detector{geometry: landmark.DefaultGeometry()}
}

// NewDetectorWithGeometry cria um detector com uma geometria fixa
func NewDetectorWithGeometry(g landmark.Geometry) *Detector {
	return &Detector{geometry: g}
}

func (d *Detector) Name() string { return "mock" }

// DetectLandmarks posiciona a geometria no centro da imagem, proporcional à largura
func (d *Detector) DetectLandmarks(ctx context.Context, frame *imaging.Frame) (*landmark.Detection, error) {
	if frame == nil || frame.Image == nil {
		return nil, landmark.ErrDetectionMissing
	}
	w, h := frame.Width(), frame.Height()
	return d.geometry.Place(landmark.Centered(w, h), w, h, 0.99), nil
}

// Lister implementa provider.ObjectLister com uma listagem estática
type Lister struct {
	mu      sync.RWMutex
	objects []provider.Object
}

var _ provider.ObjectLister = (*Lister)(nil)

// NewLister cria um lister com os objetos informados
func NewLister(objects []provider.Object) *Lister {
	return &Lister{objects: objects}
}

func (l *Lister) Name() string { return "mock" }

// ListObjects devolve os objetos cujo nome começa com prefix
func (l *Lister) ListObjects(ctx context.Context, prefix string) ([]provider.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]provider.Object, 0, len(l.objects))
	for _, o := range l.objects {
		if strings.HasPrefix(o.Name, prefix) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Set substitui a listagem
func (l *Lister) Set(objects []provider.Object) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.objects = objects
}

// sampleNames é um catálogo pequeno cobrindo todos os formatos de rosto
var sampleNames = []string{
	"001_레이어드컷_둥근형_1020대_v1.jpg.jpg",
	"001_레이어드컷_둥근형_1020대_v2.jpg.jpg",
	"002_롱스트레이트_둥근형_전연령_v1.jpg",
	"003_가르마펌_둥근형_3040대_v1.jpg",
	"004_허쉬컷_둥근형_1020대_v1.jpg",
	"005_시스루뱅단발_둥근형_1020대_v1.jpg",
	"010_클래식보브_타원형_1020대_v1.jpg",
	"010_클래식보브_타원형_1020대_v2.jpg",
	"011_레이어드미디움_타원형_전연령_v1.jpg",
	"012_히피펌_타원형_3040대_v1.jpg",
	"013_픽시컷_타원형_1020대_v1.jpg",
	"020_웨이브펌_각진형_전연령_v1.jpg",
	"021_샤기레이어드_각진형_3040대_v1.jpg",
	"022_사이드가르마_각진형_5060대_v1.jpg",
	"030_시스루뱅_긴형_1020대_v1.jpg",
	"031_볼륨단발_긴형_전연령_v1.jpg",
	"032_빌드펌_긴형_3040대_v1.jpg",
	"040_턱선보브_하트형_전연령_v1.jpg",
	"041_굵은웨이브_하트형_1020대_v1.jpg",
	"042_사이드뱅_하트형_3040대_v1.jpg",
	"050_풀뱅_다이아몬드형_1020대_v1.jpg",
	"051_단발보브_다이아몬드형_전연령_v1.jpg",
	"052_레이어드롱_다이아몬드형_5060대_v1.jpg",
}

// SampleObjects returns the sample catalog under prefix with URLs rooted at baseURL
func SampleObjects(baseURL, prefix string) []provider.Object {
	baseURL = strings.TrimRight(baseURL, "/")
	out := make([]provider.Object, len(sampleNames))
	for i, n := range sampleNames {
		key := prefix + n
		out[i] = provider.Object{Name: key, URL: baseURL + "/" + key}
	}
	return out
}
