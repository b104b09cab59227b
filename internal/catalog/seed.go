package catalog

import "github.com/boofmebel/boofmebel/internal/domain"

// GlobalReviews are shown ahead of the per-product reviews
var GlobalReviews = []domain.Review{
	{Author: "Дарья", Rating: 5, Text: "Заказ оформили быстро, ткань помогли подобрать по образцам.", Date: "2025-10-02"},
	{Author: "Алексей", Rating: 4, Text: "Сборка в тот же день доставки, упаковка отличная.", Date: "2025-10-08"},
}

// Seed returns the built-in product list
func Seed() []domain.Product {
	return []domain.Product{
		{
			ID:            "soho",
			Name:          "Диван Soho 3-х местный",
			Category:      domain.CategorySofa,
			Badge:         "Хит",
			Price:         89000,
			OriginalPrice: 102000,
			Short:         "Съемные чехлы, глубокая посадка, спальное место 200×150 см",
			Description:   "Мягкий диван с модульной системой. Чехлы можно снять и почистить. Усиленный каркас и HR-пена — держит форму и комфорт.",
			Images:        []string{"images/soho-1.svg", "images/soho-2.svg"},
			Fabrics: domain.NewFabrics(
				domain.Fabric{ID: "linen-ice", Name: "Лён — ледяной", PriceDelta: 0, Color: "#cfd7df"},
				domain.Fabric{ID: "vel-soft", Name: "Велюр — тёплый серый", PriceDelta: 4000, Color: "#b0a99f"},
				domain.Fabric{ID: "boucle-sand", Name: "Букле — песочный", PriceDelta: 7000, Color: "#d7c7b0"},
			),
			Specs: domain.Specs{
				Frame:    "Берёзовая фанера + сухой брус",
				Filler:   "HR-пена 35/45 + холлофайбер",
				Warranty: "3 года",
				Cover:    "Съёмные чехлы, сухая чистка",
			},
			Dimensions: domain.Dimensions{Width: 230, Depth: 105, Height: 90, Sleep: "200×150", Weight: 68},
			Reviews: []domain.Review{
				{Author: "Марина", Rating: 5, Text: "Комфортный, ткань легко чистится, привезли за неделю.", Date: "2025-10-01"},
				{Author: "Игорь", Rating: 4, Text: "Брал в букле, выглядит богато. Подлокотники удобные.", Date: "2025-10-12"},
			},
		},
		{
			ID:            "loft-corner",
			Name:          "Угловой диван Loft",
			Category:      domain.CategoryCornerSofa,
			Badge:         "Новинка",
			Price:         94000,
			OriginalPrice: 112000,
			Short:         "Модульный угол, спальное место 210×155 см, ниша для белья",
			Description:   "Угловая компоновка с высокой опорой и поддержкой поясницы. Подойдёт для ежедневного сна. Ниша для белья в шезлонге.",
			Images:        []string{"images/loft-1.svg", "images/loft-2.svg"},
			Fabrics: domain.NewFabrics(
				domain.Fabric{ID: "vel-deep", Name: "Велюр — графит", PriceDelta: 0, Color: "#555"},
				domain.Fabric{ID: "linen-storm", Name: "Лён — шторм", PriceDelta: 3500, Color: "#8a8f99"},
				domain.Fabric{ID: "eco-cream", Name: "Эко-кожа — крем", PriceDelta: 6000, Color: "#f1e6d6"},
			),
			Specs: domain.Specs{
				Frame:    "Металлокаркас + берёзовый брус",
				Filler:   "Пружинный блок + HR-пена",
				Warranty: "3 года",
				Cover:    "Несъёмные, пятновыводитель допустим",
			},
			Dimensions: domain.Dimensions{Width: 275, Depth: 170, Height: 92, Sleep: "210×155", Weight: 82},
			Reviews: []domain.Review{
				{Author: "Светлана", Rating: 5, Text: "Мягкий, угол можно переставлять, ниша вместительная.", Date: "2025-10-05"},
			},
		},
		{
			ID:            "cozy-chair",
			Name:          "Кресло Cozy",
			Category:      domain.CategoryArmchair,
			Badge:         "Хит",
			Price:         34000,
			OriginalPrice: 39000,
			Short:         "Кокон с опорой для спины и съёмной подушкой",
			Description:   "Компактное кресло для чтения и отдыха. Съёмная подушка, мягкие подлокотники, облегчённая рама для лёгкого переставления.",
			Images:        []string{"images/cozy-1.svg", "images/cozy-2.svg"},
			Fabrics: domain.NewFabrics(
				domain.Fabric{ID: "boucle-milk", Name: "Букле — молочный", PriceDelta: 0, Color: "#f3e9da"},
				domain.Fabric{ID: "vel-olive", Name: "Велюр — олива", PriceDelta: 1800, Color: "#7a835c"},
			),
			Specs: domain.Specs{
				Frame:    "Фанера + берёзовый брус",
				Filler:   "HR-пена 38 + пуховый микс",
				Warranty: "2 года",
				Cover:    "Съёмная подушка",
			},
			Dimensions: domain.Dimensions{Width: 92, Depth: 90, Height: 88, Sleep: "—", Weight: 28},
			Reviews: []domain.Review{
				{Author: "Антон", Rating: 5, Text: "Очень удобное, не проседает. Подушка снимается.", Date: "2025-09-20"},
			},
		},
		{
			ID:            "berlin-lounger",
			Name:          "Лаунж Berlin",
			Category:      domain.CategorySofa,
			Badge:         "Хит",
			Price:         76000,
			OriginalPrice: 89000,
			Short:         "Низкая посадка, широкие подушки, стиль лофт",
			Description:   "Лаунж-диван с глубокими сидениями и мягкими спинками. Отлично смотрится в минимализме и лофте.",
			Images:        []string{"images/berlin-1.svg", "images/berlin-2.svg"},
			Fabrics: domain.NewFabrics(
				domain.Fabric{ID: "linen-graphite", Name: "Лён — графит", PriceDelta: 0, Color: "#4a4f56"},
				domain.Fabric{ID: "vel-sand", Name: "Велюр — песок", PriceDelta: 2500, Color: "#d5c3a7"},
			),
			Specs: domain.Specs{
				Frame:    "Брус + фанера",
				Filler:   "HR-пена 35 + пуховый микс",
				Warranty: "3 года",
				Cover:    "Съёмные сиденья и спинки",
			},
			Dimensions: domain.Dimensions{Width: 210, Depth: 110, Height: 82, Sleep: "195×145", Weight: 60},
			Reviews: []domain.Review{
				{Author: "Кирилл", Rating: 5, Text: "Очень комфортный, гости спят без жалоб.", Date: "2025-09-10"},
			},
		},
		{
			ID:            "mila-compact",
			Name:          "Диван-кровать Mila",
			Category:      domain.CategorySofa,
			Badge:         "Новинка",
			Price:         68000,
			OriginalPrice: 78000,
			Short:         "Компакт 190 см, спальное место 190×145 см",
			Description:   "Компактный диван для городских квартир. Лёгкий механизм, ортопедическое основание, подлокотники съёмные.",
			Images:        []string{"images/mila-1.svg", "images/mila-2.svg"},
			Fabrics: domain.NewFabrics(
				domain.Fabric{ID: "linen-mist", Name: "Лён — туман", PriceDelta: 0, Color: "#c9ced6"},
				domain.Fabric{ID: "vel-sky", Name: "Велюр — голубой", PriceDelta: 1800, Color: "#9bb7d3"},
			),
			Specs: domain.Specs{
				Frame:    "Металлокаркас + фанера",
				Filler:   "HR-пена 32 + слой латекса",
				Warranty: "3 года",
				Cover:    "Несъёмные, петли для химчистки",
			},
			Dimensions: domain.Dimensions{Width: 190, Depth: 95, Height: 86, Sleep: "190×145", Weight: 55},
			Reviews: []domain.Review{
				{Author: "Лена", Rating: 4, Text: "Легко раскладывается, компактный.", Date: "2025-10-15"},
			},
		},
		{
			ID:            "porto-bed",
			Name:          "Кровать Porto с мягким изголовьем",
			Category:      domain.CategorySofa,
			Badge:         "Топ",
			Price:         82000,
			OriginalPrice: 92000,
			Short:         "Подъёмный механизм, ниша для белья, изголовье с кантом",
			Description:   "Кровать с мягкой спинкой и большим коробом для хранения. Доступны размеры 160/180 см.",
			Images:        []string{"images/porto-1.svg", "images/porto-2.svg"},
			Fabrics: domain.NewFabrics(
				domain.Fabric{ID: "vel-milk", Name: "Велюр — молочный", PriceDelta: 0, Color: "#f4eadf"},
				domain.Fabric{ID: "eco-taupe", Name: "Эко-кожа — тауп", PriceDelta: 3500, Color: "#cbb9a0"},
			),
			Specs: domain.Specs{
				Frame:    "Фанера + ламели",
				Filler:   "Изголовье — HR-пена 30",
				Warranty: "3 года",
				Cover:    "Несъёмный кантованный",
			},
			Dimensions: domain.Dimensions{Width: 200, Depth: 220, Height: 115, Sleep: "160/180×200", Weight: 85},
			Reviews: []domain.Review{
				{Author: "Виктория", Rating: 5, Text: "Очень аккуратный кант, короб вместительный.", Date: "2025-08-30"},
			},
		},
	}
}

// Builtin returns the catalog built from the seed list
func Builtin() *Catalog {
	c, err := New(Seed())
	if err != nil {
		panic("catalog: invalid seed data: " + err.Error())
	}
	return c
}
