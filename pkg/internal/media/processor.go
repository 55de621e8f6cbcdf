package media

import (
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/yeisme/relicvault/pkg/configs"
	"github.com/yeisme/relicvault/pkg/internal/model"
	fsc "github.com/yeisme/relicvault/pkg/internal/storage/fs"
	"github.com/yeisme/relicvault/pkg/log"
)

// Derivation 一次派生的结果.
type Derivation struct {
	// RenditionRel 缩略副本的相对路径；非图像族为空
	RenditionRel string
	// SniffedExt 嗅探得到的扩展名，与申报一致时为空
	SniffedExt string
}

// Processor 为图像族资产派生固定包围盒的缩略副本；其余种类原样放行.
//
// 缩放策略：等比缩小适配包围盒（fit，不裁剪不填充），Lanczos 重采样，
// 固定质量重编码。副本写在主文件旁边，随后与主文件一起被移动。
type Processor struct {
	fs      *fsc.Client
	width   int
	height  int
	quality int
	logger  zerolog.Logger
}

// NewProcessor 构造 Processor.
func NewProcessor(fs *fsc.Client, cfg *configs.MediaConfig) *Processor {
	return &Processor{
		fs:      fs,
		width:   cfg.ThumbnailWidth,
		height:  cfg.ThumbnailHeight,
		quality: cfg.ThumbnailQuality,
		logger:  log.Component("processor"),
	}
}

// Derive 在提升提交前同步执行。无法处理的文件中止整个提升——资产停留在
// STAGED，文件原样保留，绝不出现半提升状态。
func (p *Processor) Derive(relPrimary, kind string) (*Derivation, error) {
	if !model.IsImageKind(kind) {
		// 视频、文档等：主文件本身即全部用途
		return &Derivation{}, nil
	}

	abs := p.fs.Abs(relPrimary)

	mt, err := mimetype.DetectFile(abs)
	if err != nil {
		return nil, wrapErr(ErrUnsupportedOrCorruptMedia, "sniff %s: %v", relPrimary, err)
	}

	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, wrapErr(ErrUnsupportedOrCorruptMedia, "%s declared image but is %s", relPrimary, mt.String())
	}

	src, err := imaging.Open(abs)
	if err != nil {
		return nil, wrapErr(ErrUnsupportedOrCorruptMedia, "decode %s: %v", relPrimary, err)
	}

	// 申报扩展名与嗅探不符时以嗅探为准，刻意的宽容而非缺陷
	d := &Derivation{}

	declared := NormalizeExt(extOf(relPrimary))
	sniffed := NormalizeExt(mt.Extension())

	effective := declared
	if sniffed != "" && sniffed != declared {
		d.SniffedExt = sniffed
		effective = sniffed
	}

	thumb := imaging.Fit(src, p.width, p.height, imaging.Lanczos)

	d.RenditionRel = RenditionPath(strings.TrimSuffix(relPrimary, declared) + effective)
	if err := imaging.Save(thumb, p.fs.Abs(d.RenditionRel), imaging.JPEGQuality(p.quality)); err != nil {
		return nil, wrapErr(ErrUnsupportedOrCorruptMedia, "encode rendition for %s: %v", relPrimary, err)
	}

	p.logger.Debug().
		Str("primary", relPrimary).
		Str("rendition", d.RenditionRel).
		Str("sniffed_ext", d.SniffedExt).
		Msg("rendition derived")

	return d, nil
}

// extOf 取路径的扩展名（含点）.
func extOf(rel string) string {
	if i := strings.LastIndex(rel, "."); i >= 0 && i > strings.LastIndex(rel, "/") {
		return rel[i:]
	}

	return ""
}
