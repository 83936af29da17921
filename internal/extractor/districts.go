package extractor

// districtCodes 德国车牌的地区代码表（大写）
// 不求全国完整，覆盖车队常见的地区；未命中的前缀由格式化器原样返回
var districtCodes = map[string]struct{}{
	// 一位
	"A": {}, "B": {}, "D": {}, "E": {}, "F": {}, "G": {}, "H": {}, "K": {},
	"L": {}, "M": {}, "N": {}, "P": {}, "R": {}, "S": {}, "W": {}, "Z": {},
	// 两位
	"AA": {}, "AB": {}, "AC": {}, "AW": {}, "BA": {}, "BB": {}, "BC": {},
	"BI": {}, "BM": {}, "BN": {}, "BO": {}, "BS": {}, "CE": {}, "CO": {},
	"CW": {}, "DA": {}, "DD": {}, "DO": {}, "DU": {},
	"EF": {}, "EN": {}, "ER": {}, "ES": {}, "EU": {}, "FB": {}, "FD": {},
	"FN": {}, "FR": {}, "FS": {}, "FT": {}, "GE": {}, "GI": {}, "GL": {},
	"GM": {}, "GP": {}, "GS": {}, "HA": {}, "HB": {}, "HD": {}, "HE": {},
	"HF": {}, "HG": {}, "HH": {}, "HI": {}, "HL": {}, "HM": {}, "HN": {},
	"HP": {}, "HR": {}, "HS": {}, "HU": {}, "IN": {}, "IZ": {}, "JE": {},
	"KA": {}, "KB": {}, "KE": {}, "KI": {}, "KL": {}, "KN": {}, "KO": {},
	"KR": {}, "KS": {}, "LA": {}, "LB": {}, "LD": {}, "LG": {}, "LI": {},
	"LM": {}, "LU": {}, "MA": {}, "MB": {}, "ME": {}, "MG": {}, "MH": {},
	"MK": {}, "MM": {}, "MS": {}, "MZ": {}, "NB": {}, "ND": {}, "NE": {},
	"NK": {}, "NM": {}, "NU": {}, "OB": {}, "OF": {}, "OG": {}, "OL": {},
	"OS": {}, "PA": {}, "PB": {}, "PF": {}, "PI": {}, "PM": {}, "PS": {},
	"RA": {}, "RE": {}, "RO": {}, "RS": {}, "RT": {}, "RV": {}, "RW": {},
	"SB": {}, "SC": {}, "SE": {}, "SG": {}, "SI": {}, "SK": {}, "SL": {},
	"SM": {}, "SN": {}, "SO": {}, "SP": {}, "ST": {}, "SU": {}, "SW": {},
	"TF": {}, "TR": {}, "TS": {}, "TU": {}, "UL": {}, "VB": {}, "VK": {},
	"VS": {}, "WE": {}, "WF": {}, "WI": {}, "WL": {}, "WM": {}, "WN": {},
	"WO": {}, "WT": {}, "WW": {}, "ZW": {},
	// 三位
	"AIC": {}, "ANA": {}, "APD": {}, "ASL": {}, "AUR": {}, "AZE": {},
	"BAD": {}, "BAR": {}, "BBG": {}, "BGL": {}, "BIR": {}, "BIT": {},
	"BLK": {}, "BOR": {}, "BOT": {}, "BRA": {}, "BTF": {}, "BUS": {},
	"CAS": {}, "CHA": {}, "CLP": {}, "COC": {}, "COE": {}, "CUX": {},
	"DAH": {}, "DAN": {}, "DAU": {}, "DEG": {}, "DEL": {}, "DGF": {},
	"DIL": {}, "DIN": {}, "DON": {}, "EBE": {}, "EIC": {}, "EMD": {},
	"EMS": {}, "ERB": {}, "ERH": {}, "ESW": {}, "FDS": {}, "FFB": {},
	"FLA": {}, "FRG": {}, "FRI": {}, "FUL": {}, "GAP": {}, "GER": {},
	"GOA": {}, "GRZ": {}, "GTH": {}, "HAS": {}, "HBN": {}, "HDH": {},
	"HEF": {}, "HER": {}, "HGW": {}, "HOL": {}, "HOM": {}, "HRO": {},
	"HSK": {}, "HST": {}, "HVL": {}, "IGB": {}, "JWB": {}, "KEH": {},
	"KIB": {}, "KLE": {}, "KUS": {}, "KYF": {}, "LAU": {}, "LDK": {},
	"LDS": {}, "LEV": {}, "LIF": {}, "LIP": {}, "LOS": {}, "LRO": {},
	"LWL": {}, "MEI": {}, "MEK": {}, "MIL": {}, "MOL": {}, "MOS": {},
	"MSE": {}, "MSP": {}, "MTK": {}, "MYK": {}, "NDH": {}, "NEA": {},
	"NES": {}, "NEW": {}, "NOH": {}, "NOM": {}, "NVP": {}, "NWM": {},
	"OAL": {}, "OHA": {}, "OHV": {}, "OHZ": {}, "OPR": {}, "OSL": {},
	"OVP": {}, "PAF": {}, "PAN": {}, "PCH": {}, "PLO": {}, "PRU": {},
	"REG": {}, "ROW": {}, "RUD": {}, "RZB": {}, "SAW": {}, "SHA": {},
	"SHG": {}, "SHK": {}, "SIG": {}, "SIM": {}, "SLF": {}, "SLS": {},
	"SOK": {}, "SON": {}, "STA": {}, "STD": {}, "SUW": {}, "TBB": {},
	"TIR": {}, "TOL": {}, "TUT": {}, "UER": {}, "USI": {}, "VEC": {},
	"VER": {}, "VIE": {}, "WAF": {}, "WAK": {}, "WEN": {}, "WES": {},
	"WIL": {}, "WND": {}, "WOB": {}, "WST": {}, "WTM": {}, "WUG": {},
	"WUN": {}, "ZEL": {},
}
