package extractor

// brandSignature logo 图片 alt/title 中的品牌关键字到展示名的映射
type brandSignature struct {
	keyword string
	name    string
}

// 按声明顺序匹配，第一个命中的关键字生效
var brandSignatures = []brandSignature{
	{"mercedes", "Mercedes-Benz"},
	{"benz", "Mercedes-Benz"},
	{"volkswagen", "Volkswagen"},
	{"vw", "Volkswagen"},
	{"skoda", "Škoda"},
	{"bmw", "BMW"},
	{"audi", "Audi"},
	{"ford", "Ford"},
	{"seat", "SEAT"},
	{"opel", "Opel"},
	{"renault", "Renault"},
	{"peugeot", "Peugeot"},
	{"citroen", "Citroën"},
	{"toyota", "Toyota"},
	{"hyundai", "Hyundai"},
	{"kia", "Kia"},
	{"nissan", "Nissan"},
	{"mazda", "Mazda"},
	{"volvo", "Volvo"},
	{"tesla", "Tesla"},
	{"porsche", "Porsche"},
	{"fiat", "Fiat"},
	{"mini", "MINI"},
	{"jeep", "Jeep"},
	{"cupra", "Cupra"},
}
