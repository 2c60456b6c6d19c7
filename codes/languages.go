package codes

// Languages lists the USB LANGID codes offered by the language selector.
var Languages = &Table{
	Name:    "Language ID",
	Default: "ENGLISH_UNITED_STATES",
	Custom:  "USER_SELECT",
	Max:     0xffff,
	Entries: []Entry{
		{Symbol: "AFRIKAANS", Prompt: "Afrikaans", Code: 0x0436},
		{Symbol: "ALBANIAN", Prompt: "Albanian", Code: 0x041c},
		{Symbol: "ARABIC_SAUDI_ARABIA", Prompt: "Arabic (Saudi Arabia)", Code: 0x0401},
		{Symbol: "ARABIC_IRAQ", Prompt: "Arabic (Iraq)", Code: 0x0801},
		{Symbol: "ARABIC_EGYPT", Prompt: "Arabic (Egypt)", Code: 0x0c01},
		{Symbol: "ARABIC_LIBYA", Prompt: "Arabic (Libya)", Code: 0x1001},
		{Symbol: "ARABIC_ALGERIA", Prompt: "Arabic (Algeria)", Code: 0x1401},
		{Symbol: "ARABIC_MOROCCO", Prompt: "Arabic (Morocco)", Code: 0x1801},
		{Symbol: "ARABIC_TUNISIA", Prompt: "Arabic (Tunisia)", Code: 0x1c01},
		{Symbol: "ARABIC_OMAN", Prompt: "Arabic (Oman)", Code: 0x2001},
		{Symbol: "ARABIC_YEMEN", Prompt: "Arabic (Yemen)", Code: 0x2401},
		{Symbol: "ARABIC_SYRIA", Prompt: "Arabic (Syria)", Code: 0x2801},
		{Symbol: "ARABIC_JORDAN", Prompt: "Arabic (Jordan)", Code: 0x2c01},
		{Symbol: "ARABIC_LEBANON", Prompt: "Arabic (Lebanon)", Code: 0x3001},
		{Symbol: "ARABIC_KUWAIT", Prompt: "Arabic (Kuwait)", Code: 0x3401},
		{Symbol: "ARABIC_UAE", Prompt: "Arabic (U.A.E.)", Code: 0x3801},
		{Symbol: "ARABIC_BAHRAIN", Prompt: "Arabic (Bahrain)", Code: 0x3c01},
		{Symbol: "ARABIC_QATAR", Prompt: "Arabic (Qatar)", Code: 0x4001},
		{Symbol: "ARMENIAN", Prompt: "Armenian", Code: 0x042b},
		{Symbol: "ASSAMESE", Prompt: "Assamese", Code: 0x044d},
		{Symbol: "AZERI_LATIN", Prompt: "Azeri (Latin)", Code: 0x042c},
		{Symbol: "AZERI_CYRILLIC", Prompt: "Azeri (Cyrillic)", Code: 0x082c},
		{Symbol: "BASQUE", Prompt: "Basque", Code: 0x042d},
		{Symbol: "BELARUSSIAN", Prompt: "Belarussian", Code: 0x0423},
		{Symbol: "BENGALI", Prompt: "Bengali", Code: 0x0445},
		{Symbol: "BULGARIAN", Prompt: "Bulgarian", Code: 0x0402},
		{Symbol: "BURMESE", Prompt: "Burmese", Code: 0x0455},
		{Symbol: "CATALAN", Prompt: "Catalan", Code: 0x0403},
		{Symbol: "CHINESE_TAIWAN", Prompt: "Chinese (Taiwan)", Code: 0x0404},
		{Symbol: "CHINESE_PRC", Prompt: "Chinese (PRC)", Code: 0x0804},
		{Symbol: "CHINESE_HONG_KONG_SAR_PRC", Prompt: "Chinese (Hong Kong SAR, PRC)", Code: 0x0c04},
		{Symbol: "CHINESE_SINGAPORE", Prompt: "Chinese (Singapore)", Code: 0x1004},
		{Symbol: "CHINESE_MACAU_SAR", Prompt: "Chinese (Macau SAR)", Code: 0x1404},
		{Symbol: "CROATIAN", Prompt: "Croatian", Code: 0x041a},
		{Symbol: "CZECH", Prompt: "Czech", Code: 0x0405},
		{Symbol: "DANISH", Prompt: "Danish", Code: 0x0406},
		{Symbol: "DUTCH_NETHERLANDS", Prompt: "Dutch (Netherlands)", Code: 0x0413},
		{Symbol: "DUTCH_BELGIUM", Prompt: "Dutch (Belgium)", Code: 0x0813},
		{Symbol: "ENGLISH_UNITED_STATES", Prompt: "English (United States)", Code: 0x0409},
		{Symbol: "ENGLISH_UNITED_KINGDOM", Prompt: "English (United Kingdom)", Code: 0x0809},
		{Symbol: "ENGLISH_AUSTRALIAN", Prompt: "English (Australian)", Code: 0x0c09},
		{Symbol: "ENGLISH_CANADIAN", Prompt: "English (Canadian)", Code: 0x1009},
		{Symbol: "ENGLISH_NEW_ZEALAND", Prompt: "English (New Zealand)", Code: 0x1409},
		{Symbol: "ENGLISH_IRELAND", Prompt: "English (Ireland)", Code: 0x1809},
		{Symbol: "ENGLISH_SOUTH_AFRICA", Prompt: "English (South Africa)", Code: 0x1c09},
		{Symbol: "ENGLISH_JAMAICA", Prompt: "English (Jamaica)", Code: 0x2009},
		{Symbol: "ENGLISH_CARIBBEAN", Prompt: "English (Caribbean)", Code: 0x2409},
		{Symbol: "ENGLISH_BELIZE", Prompt: "English (Belize)", Code: 0x2809},
		{Symbol: "ENGLISH_TRINIDAD", Prompt: "English (Trinidad)", Code: 0x2c09},
		{Symbol: "ENGLISH_ZIMBABWE", Prompt: "English (Zimbabwe)", Code: 0x3009},
		{Symbol: "ENGLISH_PHILIPPINES", Prompt: "English (Philippines)", Code: 0x3409},
		{Symbol: "ESTONIAN", Prompt: "Estonian", Code: 0x0425},
		{Symbol: "FAEROESE", Prompt: "Faeroese", Code: 0x0438},
		{Symbol: "FARSI", Prompt: "Farsi", Code: 0x0429},
		{Symbol: "FINNISH", Prompt: "Finnish", Code: 0x040b},
		{Symbol: "FRENCH_STANDARD", Prompt: "French (Standard)", Code: 0x040c},
		{Symbol: "FRENCH_BELGIAN", Prompt: "French (Belgian)", Code: 0x080c},
		{Symbol: "FRENCH_CANADIAN", Prompt: "French (Canadian)", Code: 0x0c0c},
		{Symbol: "FRENCH_SWITZERLAND", Prompt: "French (Switzerland)", Code: 0x100c},
		{Symbol: "FRENCH_LUXEMBOURG", Prompt: "French (Luxembourg)", Code: 0x140c},
		{Symbol: "FRENCH_MONACO", Prompt: "French (Monaco)", Code: 0x180c},
		{Symbol: "GEORGIAN", Prompt: "Georgian", Code: 0x0437},
		{Symbol: "GERMAN_STANDARD", Prompt: "German (Standard)", Code: 0x0407},
		{Symbol: "GERMAN_SWITZERLAND", Prompt: "German (Switzerland)", Code: 0x0807},
		{Symbol: "GERMAN_AUSTRIA", Prompt: "German (Austria)", Code: 0x0c07},
		{Symbol: "GERMAN_LUXEMBOURG", Prompt: "German (Luxembourg)", Code: 0x1007},
		{Symbol: "GERMAN_LIECHTENSTEIN", Prompt: "German (Liechtenstein)", Code: 0x1407},
		{Symbol: "GREEK", Prompt: "Greek", Code: 0x0408},
		{Symbol: "GUJARATI", Prompt: "Gujarati", Code: 0x0447},
		{Symbol: "HEBREW", Prompt: "Hebrew", Code: 0x040d},
		{Symbol: "HINDI", Prompt: "Hindi", Code: 0x0439},
		{Symbol: "HUNGARIAN", Prompt: "Hungarian", Code: 0x040e},
		{Symbol: "ICELANDIC", Prompt: "Icelandic", Code: 0x040f},
		{Symbol: "INDONESIAN", Prompt: "Indonesian", Code: 0x0421},
		{Symbol: "ITALIAN_STANDARD", Prompt: "Italian (Standard)", Code: 0x0410},
		{Symbol: "ITALIAN_SWITZERLAND", Prompt: "Italian (Switzerland)", Code: 0x0810},
		{Symbol: "JAPANESE", Prompt: "Japanese", Code: 0x0411},
		{Symbol: "KANNADA", Prompt: "Kannada", Code: 0x044b},
		{Symbol: "KASHMIRI_INDIA", Prompt: "Kashmiri (India)", Code: 0x0860},
		{Symbol: "KAZAKH", Prompt: "Kazakh", Code: 0x043f},
		{Symbol: "KONKANI", Prompt: "Konkani", Code: 0x0457},
		{Symbol: "KOREAN", Prompt: "Korean", Code: 0x0412},
		{Symbol: "KOREAN_JOHAB", Prompt: "Korean (Johab)", Code: 0x0812},
		{Symbol: "LATVIAN", Prompt: "Latvian", Code: 0x0426},
		{Symbol: "LITHUANIAN", Prompt: "Lithuanian", Code: 0x0427},
		{Symbol: "LITHUANIAN_CLASSIC", Prompt: "Lithuanian (Classic)", Code: 0x0827},
		{Symbol: "MACEDONIAN", Prompt: "Macedonian", Code: 0x042f},
		{Symbol: "MALAY_MALAYSIAN", Prompt: "Malay (Malaysian)", Code: 0x043e},
		{Symbol: "MALAY_BRUNEI_DARUSSALAM", Prompt: "Malay (Brunei Darussalam)", Code: 0x083e},
		{Symbol: "MALAYALAM", Prompt: "Malayalam", Code: 0x044c},
		{Symbol: "MANIPURI", Prompt: "Manipuri", Code: 0x0458},
		{Symbol: "MARATHI", Prompt: "Marathi", Code: 0x044e},
		{Symbol: "NEPALI_INDIA", Prompt: "Nepali (India)", Code: 0x0861},
		{Symbol: "NORWEGIAN_BOKMAL", Prompt: "Norwegian (Bokmal)", Code: 0x0414},
		{Symbol: "NORWEGIAN_NYNORSK", Prompt: "Norwegian (Nynorsk)", Code: 0x0814},
		{Symbol: "ORIYA", Prompt: "Oriya", Code: 0x0448},
		{Symbol: "POLISH", Prompt: "Polish", Code: 0x0415},
		{Symbol: "PORTUGUESE_BRAZIL", Prompt: "Portuguese (Brazil)", Code: 0x0416},
		{Symbol: "PORTUGUESE_STANDARD", Prompt: "Portuguese (Standard)", Code: 0x0816},
		{Symbol: "PUNJABI", Prompt: "Punjabi", Code: 0x0446},
		{Symbol: "ROMANIAN", Prompt: "Romanian", Code: 0x0418},
		{Symbol: "RUSSIAN", Prompt: "Russian", Code: 0x0419},
		{Symbol: "SANSKRIT", Prompt: "Sanskrit", Code: 0x044f},
		{Symbol: "SERBIAN_CYRILLIC", Prompt: "Serbian (Cyrillic)", Code: 0x0c1a},
		{Symbol: "SERBIAN_LATIN", Prompt: "Serbian (Latin)", Code: 0x081a},
		{Symbol: "SINDHI", Prompt: "Sindhi", Code: 0x0459},
		{Symbol: "SLOVAK", Prompt: "Slovak", Code: 0x041b},
		{Symbol: "SLOVENIAN", Prompt: "Slovenian", Code: 0x0424},
		{Symbol: "SPANISH_TRADITIONAL_SORT", Prompt: "Spanish (Traditional Sort)", Code: 0x040a},
		{Symbol: "SPANISH_MEXICAN", Prompt: "Spanish (Mexican)", Code: 0x080a},
		{Symbol: "SPANISH_MODERN_SORT", Prompt: "Spanish (Modern Sort)", Code: 0x0c0a},
		{Symbol: "SPANISH_GUATEMALA", Prompt: "Spanish (Guatemala)", Code: 0x100a},
		{Symbol: "SPANISH_COSTA_RICA", Prompt: "Spanish (Costa Rica)", Code: 0x140a},
		{Symbol: "SPANISH_PANAMA", Prompt: "Spanish (Panama)", Code: 0x180a},
		{Symbol: "SPANISH_DOMINICAN_REPUBLIC", Prompt: "Spanish (Dominican Republic)", Code: 0x1c0a},
		{Symbol: "SPANISH_VENEZUELA", Prompt: "Spanish (Venezuela)", Code: 0x200a},
		{Symbol: "SPANISH_COLOMBIA", Prompt: "Spanish (Colombia)", Code: 0x240a},
		{Symbol: "SPANISH_PERU", Prompt: "Spanish (Peru)", Code: 0x280a},
		{Symbol: "SPANISH_ARGENTINA", Prompt: "Spanish (Argentina)", Code: 0x2c0a},
		{Symbol: "SPANISH_ECUADOR", Prompt: "Spanish (Ecuador)", Code: 0x300a},
		{Symbol: "SPANISH_CHILE", Prompt: "Spanish (Chile)", Code: 0x340a},
		{Symbol: "SPANISH_URUGUAY", Prompt: "Spanish (Uruguay)", Code: 0x380a},
		{Symbol: "SPANISH_PARAGUAY", Prompt: "Spanish (Paraguay)", Code: 0x3c0a},
		{Symbol: "SPANISH_BOLIVIA", Prompt: "Spanish (Bolivia)", Code: 0x400a},
		{Symbol: "SPANISH_EL_SALVADOR", Prompt: "Spanish (El Salvador)", Code: 0x440a},
		{Symbol: "SPANISH_HONDURAS", Prompt: "Spanish (Honduras)", Code: 0x480a},
		{Symbol: "SPANISH_NICARAGUA", Prompt: "Spanish (Nicaragua)", Code: 0x4c0a},
		{Symbol: "SPANISH_PUERTO_RICO", Prompt: "Spanish (Puerto Rico)", Code: 0x500a},
		{Symbol: "SUTU", Prompt: "Sutu", Code: 0x0430},
		{Symbol: "SWAHILI_KENYA", Prompt: "Swahili (Kenya)", Code: 0x0441},
		{Symbol: "SWEDISH", Prompt: "Swedish", Code: 0x041d},
		{Symbol: "SWEDISH_FINLAND", Prompt: "Swedish (Finland)", Code: 0x081d},
		{Symbol: "TAMIL", Prompt: "Tamil", Code: 0x0449},
		{Symbol: "TATAR_TATARSTAN", Prompt: "Tatar (Tatarstan)", Code: 0x0444},
		{Symbol: "TELUGU", Prompt: "Telugu", Code: 0x044a},
		{Symbol: "THAI", Prompt: "Thai", Code: 0x041e},
		{Symbol: "TURKISH", Prompt: "Turkish", Code: 0x041f},
		{Symbol: "UKRAINIAN", Prompt: "Ukrainian", Code: 0x0422},
		{Symbol: "URDU_PAKISTAN", Prompt: "Urdu (Pakistan)", Code: 0x0420},
		{Symbol: "URDU_INDIA", Prompt: "Urdu (India)", Code: 0x0820},
		{Symbol: "UZBEK_LATIN", Prompt: "Uzbek (Latin)", Code: 0x0443},
		{Symbol: "UZBEK_CYRILLIC", Prompt: "Uzbek (Cyrillic)", Code: 0x0843},
		{Symbol: "VIETNAMESE", Prompt: "Vietnamese", Code: 0x042a},
		{Symbol: "HID_USAGE_DATA_DESCRIPTOR", Prompt: "HID (Usage Data Descriptor)", Code: 0x04ff},
		{Symbol: "HID_VENDOR_DEFINED_1", Prompt: "HID (Vendor Defined 1)", Code: 0xf0ff},
		{Symbol: "HID_VENDOR_DEFINED_2", Prompt: "HID (Vendor Defined 2)", Code: 0xf4ff},
		{Symbol: "HID_VENDOR_DEFINED_3", Prompt: "HID (Vendor Defined 3)", Code: 0xf8ff},
		{Symbol: "HID_VENDOR_DEFINED_4", Prompt: "HID (Vendor Defined 4)", Code: 0xfcff},
	},
}
