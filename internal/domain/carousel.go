package domain

// CarouselWindow é o cursor de paginação sobre uma sequência ordenada de produtos.
// Invariante: 0 <= Offset <= MaxOffset(total).
type CarouselWindow struct {
	PageSize int `json:"page_size"`
	Offset   int `json:"offset"`
}

// NewCarouselWindow cria a janela no início. pageSize < 1 vira 1.
func NewCarouselWindow(pageSize int) CarouselWindow {
	if pageSize < 1 {
		pageSize = 1
	}
	return CarouselWindow{PageSize: pageSize}
}

func (w CarouselWindow) MaxOffset(total int) int {
	return max(0, total-w.PageSize)
}

// Clamp recoloca o offset no intervalo válido (ex.: o catálogo encolheu).
func (w *CarouselWindow) Clamp(total int) {
	w.Offset = min(max(0, w.Offset), w.MaxOffset(total))
}

// Next avança um item; satura no limite.
func (w *CarouselWindow) Next(total int) {
	w.Offset = min(w.MaxOffset(total), w.Offset+1)
}

// Previous recua um item; satura em zero.
func (w *CarouselWindow) Previous() {
	w.Offset = max(0, w.Offset-1)
}

// JumpToPage posiciona a janela no início da página, limitando a páginas válidas.
func (w *CarouselWindow) JumpToPage(page, total int) {
	maxOffset := w.MaxOffset(total)
	size := max(1, w.PageSize)
	switch {
	case page <= 0:
		w.Offset = 0
	case page > maxOffset/size:
		// Evita o overflow de page*size para índices enormes.
		w.Offset = maxOffset
	default:
		w.Offset = page * size
	}
}

// Visible devolve a fatia visível; só é menor que PageSize na página final.
func (w CarouselWindow) Visible(products []Product) []Product {
	w.Clamp(len(products))
	end := min(w.Offset+w.PageSize, len(products))
	return products[w.Offset:end]
}

func (w CarouselWindow) CanPrevious() bool { return w.Offset > 0 }

func (w CarouselWindow) CanNext(total int) bool { return w.Offset < w.MaxOffset(total) }

// PageCount é ceil(total/PageSize).
func (w CarouselWindow) PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + w.PageSize - 1) / w.PageSize
}

// ActivePage indica o marcador de página destacado na navegação por pontos.
func (w CarouselWindow) ActivePage(page int) bool {
	return w.Offset == page*w.PageSize
}
