package custom

func SetID(v string) {}

func SetPair(name, id string) {}

func use() {
	SetID("custom-id")              // want `literal string passed as id attribute value`
	SetPair("not-checked", "pair") // want `literal string passed as id attribute value`
}
