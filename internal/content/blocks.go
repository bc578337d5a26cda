package content

// Kind is the discriminator carried in the `type` field of every block.
type Kind string

const (
	KindHero              Kind = "hero"
	KindImageShowcase     Kind = "imageShowcase"
	KindTextColumns       Kind = "textColumns"
	KindSteps             Kind = "steps"
	KindRuleCards         Kind = "ruleCards"
	KindIconCards         Kind = "iconCards"
	KindStatStrip         Kind = "statStrip"
	KindSwatches          Kind = "swatches"
	KindTypeScale         Kind = "typeScale"
	KindDoDont            Kind = "doDont"
	KindGallery           Kind = "gallery"
	KindVideo             Kind = "video"
	KindDownloadList      Kind = "downloadList"
	KindQuickLinks        Kind = "quickLinks"
	KindBrandColorPalette Kind = "brandColorPalette"
	KindLogoVariants      Kind = "logoVariants"
	KindQuote             Kind = "quote"
)

// Kinds lists every known block kind in declaration order.
var Kinds = []Kind{
	KindHero, KindImageShowcase, KindTextColumns, KindSteps, KindRuleCards,
	KindIconCards, KindStatStrip, KindSwatches, KindTypeScale, KindDoDont,
	KindGallery, KindVideo, KindDownloadList, KindQuickLinks,
	KindBrandColorPalette, KindLogoVariants, KindQuote,
}

// Block is one content module on a page. The concrete type is determined by Kind.
type Block interface {
	Kind() Kind
}

type Hero struct {
	Eyebrow     string `yaml:"eyebrow,omitempty" json:"eyebrow,omitempty"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type ImageShowcase struct {
	Src        string `yaml:"src" json:"src"`
	Alt        string `yaml:"alt" json:"alt"`
	Caption    string `yaml:"caption,omitempty" json:"caption,omitempty"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	Compact    bool   `yaml:"compact,omitempty" json:"compact,omitempty"`
}

// Column is a text column. CopyText, when set, is the clipboard payload and
// differs from the displayed Body.
type Column struct {
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
	Body     string `yaml:"body" json:"body"`
	CopyText string `yaml:"copyText,omitempty" json:"copyText,omitempty"`
}

type TextColumns struct {
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	Columns []Column `yaml:"columns" json:"columns"`
}

// Card is a titled body of text used by steps and rule cards.
type Card struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

type Steps struct {
	Title string `yaml:"title" json:"title"`
	Steps []Card `yaml:"steps" json:"steps"`
}

type RuleCards struct {
	Title string `yaml:"title" json:"title"`
	Cards []Card `yaml:"cards" json:"cards"`
}

// IconKey names one of the fixed glyphs available to icon cards.
type IconKey string

// IconKeys is the closed set of icon names.
var IconKeys = []IconKey{
	"users", "sparkles", "network", "handshake", "rocket", "shield", "globe",
	"layers", "briefcase", "chart", "book", "palette", "type", "play", "camera",
}

// Valid reports whether k is one of IconKeys.
func (k IconKey) Valid() bool {
	for _, v := range IconKeys {
		if v == k {
			return true
		}
	}
	return false
}

type IconCard struct {
	Icon  IconKey `yaml:"icon" json:"icon"`
	Title string  `yaml:"title" json:"title"`
	Body  string  `yaml:"body" json:"body"`
}

type IconCards struct {
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Cards       []IconCard `yaml:"cards" json:"cards"`
}

type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
	Note  string `yaml:"note,omitempty" json:"note,omitempty"`
}

type StatStrip struct {
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	Stats []Stat `yaml:"stats" json:"stats"`
}

type Swatch struct {
	Name string `yaml:"name" json:"name"`
	Hex  string `yaml:"hex" json:"hex"`
	Role string `yaml:"role" json:"role"`
}

type Swatches struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Swatches    []Swatch `yaml:"swatches" json:"swatches"`
}

// TypeSample is one row of a type scale. StyleToken is what gets copied.
type TypeSample struct {
	Label        string `yaml:"label" json:"label"`
	Preview      string `yaml:"preview" json:"preview"`
	StyleToken   string `yaml:"styleToken" json:"styleToken"`
	PreviewClass string `yaml:"previewClass,omitempty" json:"previewClass,omitempty"`
}

type TypeScale struct {
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Samples     []TypeSample `yaml:"samples" json:"samples"`
}

// Verdict distinguishes affirmative from cautionary guidance.
type Verdict string

const (
	VerdictDo   Verdict = "do"
	VerdictDont Verdict = "dont"
)

type Guideline struct {
	Kind  Verdict `yaml:"kind" json:"kind"`
	Title string  `yaml:"title" json:"title"`
	Text  string  `yaml:"text" json:"text"`
}

type DoDont struct {
	Title string      `yaml:"title" json:"title"`
	Items []Guideline `yaml:"items" json:"items"`
}

type GalleryItem struct {
	Src     string `yaml:"src" json:"src"`
	Alt     string `yaml:"alt" json:"alt"`
	Caption string `yaml:"caption,omitempty" json:"caption,omitempty"`
}

type Gallery struct {
	Title string        `yaml:"title,omitempty" json:"title,omitempty"`
	Items []GalleryItem `yaml:"items" json:"items"`
}

type Video struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Src         string `yaml:"src" json:"src"`
	Poster      string `yaml:"poster,omitempty" json:"poster,omitempty"`
}

// DownloadAsset is a downloadable resource. File is either a root-relative
// path served by the site or an absolute http(s) URL.
type DownloadAsset struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Format      string `yaml:"format" json:"format"`
	File        string `yaml:"file" json:"file"`
}

type DownloadList struct {
	Title string          `yaml:"title" json:"title"`
	Items []DownloadAsset `yaml:"items" json:"items"`
}

type QuickLinkItem struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string `yaml:"url" json:"url"`
	Platform    string `yaml:"platform,omitempty" json:"platform,omitempty"`
}

// QuickLinks may carry an empty Title, in which case only the heading is omitted.
type QuickLinks struct {
	Title string          `yaml:"title" json:"title"`
	Items []QuickLinkItem `yaml:"items" json:"items"`
}

// BrandColor is a full colour profile.
type BrandColor struct {
	Name    string `yaml:"name" json:"name"`
	Hex     string `yaml:"hex" json:"hex"`
	RGB     string `yaml:"rgb" json:"rgb"`
	CMYK    string `yaml:"cmyk" json:"cmyk"`
	Pantone string `yaml:"pantone,omitempty" json:"pantone,omitempty"`
	Role    string `yaml:"role,omitempty" json:"role,omitempty"`
}

type BrandColorPalette struct {
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Colors      []BrandColor `yaml:"colors" json:"colors"`
}

type LogoVariant struct {
	Name       string `yaml:"name" json:"name"`
	Src        string `yaml:"src" json:"src"`
	File       string `yaml:"file" json:"file"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	Note       string `yaml:"note,omitempty" json:"note,omitempty"`
}

type LogoVariants struct {
	Title       string        `yaml:"title" json:"title"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Variants    []LogoVariant `yaml:"variants" json:"variants"`
}

type Quote struct {
	Text   string `yaml:"text" json:"text"`
	Author string `yaml:"author,omitempty" json:"author,omitempty"`
}

// Unknown holds a block whose type tag is not recognised. It renders nothing.
type Unknown struct {
	Type string `json:"-"`
}

func (Hero) Kind() Kind              { return KindHero }
func (ImageShowcase) Kind() Kind     { return KindImageShowcase }
func (TextColumns) Kind() Kind       { return KindTextColumns }
func (Steps) Kind() Kind             { return KindSteps }
func (RuleCards) Kind() Kind         { return KindRuleCards }
func (IconCards) Kind() Kind         { return KindIconCards }
func (StatStrip) Kind() Kind         { return KindStatStrip }
func (Swatches) Kind() Kind          { return KindSwatches }
func (TypeScale) Kind() Kind         { return KindTypeScale }
func (DoDont) Kind() Kind            { return KindDoDont }
func (Gallery) Kind() Kind           { return KindGallery }
func (Video) Kind() Kind             { return KindVideo }
func (DownloadList) Kind() Kind      { return KindDownloadList }
func (QuickLinks) Kind() Kind        { return KindQuickLinks }
func (BrandColorPalette) Kind() Kind { return KindBrandColorPalette }
func (LogoVariants) Kind() Kind      { return KindLogoVariants }
func (Quote) Kind() Kind             { return KindQuote }
func (u Unknown) Kind() Kind         { return Kind(u.Type) }

// newBlock returns a pointer to the zero value of the variant for kind.
func newBlock(kind Kind) (Block, bool) {
	switch kind {
	case KindHero:
		return &Hero{}, true
	case KindImageShowcase:
		return &ImageShowcase{}, true
	case KindTextColumns:
		return &TextColumns{}, true
	case KindSteps:
		return &Steps{}, true
	case KindRuleCards:
		return &RuleCards{}, true
	case KindIconCards:
		return &IconCards{}, true
	case KindStatStrip:
		return &StatStrip{}, true
	case KindSwatches:
		return &Swatches{}, true
	case KindTypeScale:
		return &TypeScale{}, true
	case KindDoDont:
		return &DoDont{}, true
	case KindGallery:
		return &Gallery{}, true
	case KindVideo:
		return &Video{}, true
	case KindDownloadList:
		return &DownloadList{}, true
	case KindQuickLinks:
		return &QuickLinks{}, true
	case KindBrandColorPalette:
		return &BrandColorPalette{}, true
	case KindLogoVariants:
		return &LogoVariants{}, true
	case KindQuote:
		return &Quote{}, true
	}
	return nil, false
}
