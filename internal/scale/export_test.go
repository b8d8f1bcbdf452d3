package scale

func FillScriptHash() string {
	return fillScript.Hash()
}
