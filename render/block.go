package render

// Block 是一个有固定尺寸的内容块
type Block struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewBlock(id string, width, height float64) *Block {
	return &Block{ID: id, Width: width, Height: height}
}

func (b *Block) Size() (float64, float64) { return b.Width, b.Height }
