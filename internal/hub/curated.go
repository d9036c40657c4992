package hub

import "github.com/nordtext/scandibench/internal/language"

// Multilingual models benchmarked regardless of their hub language tags.
var multilingualModels = []string{
	"xlm-roberta-large",
	"Peltarion/xlm-roberta-longformer-base-4096",
	"microsoft/xlm-align-base",
	"microsoft/infoxlm-base",
	"microsoft/infoxlm-large",
	"bert-base-multilingual-cased",
	"bert-base-multilingual-uncased",
	"distilbert-base-multilingual-cased",
	"cardiffnlp/twitter-xlm-roberta-base",
}

// Freshly initialized baseline models, never hosted on the hub.
var freshModels = []string{
	"fresh-electra-small",
	"fresh-xlm-roberta-base",
}

// Multilingual models that cover Danish but have not tagged "da".
var untaggedDanishModels = []string{
	"Geotrend/bert-base-en-da-cased",
	"Geotrend/bert-base-25lang-cased",
	"Geotrend/bert-base-en-fr-de-no-da-cased",
	"Geotrend/distilbert-base-en-da-cased",
	"Geotrend/distilbert-base-25lang-cased",
	"Geotrend/distilbert-base-en-fr-de-no-da-cased",
}

// Multilingual models that cover Norwegian but have not tagged "no"/"nb"/"nn".
var untaggedNorwegianModels = []string{
	"Geotrend/bert-base-en-no-cased",
	"Geotrend/bert-base-25lang-cased",
	"Geotrend/bert-base-en-fr-de-no-da-cased",
	"Geotrend/distilbert-base-en-no-cased",
	"Geotrend/distilbert-base-25lang-cased",
	"Geotrend/distilbert-base-en-fr-de-no-da-cased",
}

func addCuratedModels(lists map[string][]string, langs []language.Language) {
	if lists == nil {
		return
	}

	lists["multilingual"] = append(lists["multilingual"], multilingualModels...)
	lists["all"] = append(lists["all"], multilingualModels...)

	lists["fresh"] = append(lists["fresh"], freshModels...)
	lists["all"] = append(lists["all"], freshModels...)

	hasDanish := len(langs) == 0
	hasNorwegian := len(langs) == 0
	for _, l := range langs {
		if l.Code == language.DA.Code {
			hasDanish = true
		}
		if language.Norwegian(l) {
			hasNorwegian = true
		}
	}

	if hasDanish {
		lists["da"] = append(lists["da"], untaggedDanishModels...)
		lists["all"] = append(lists["all"], untaggedDanishModels...)
	}
	if hasNorwegian {
		lists["no"] = append(lists["no"], untaggedNorwegianModels...)
		lists["all"] = append(lists["all"], untaggedNorwegianModels...)
	}
}
