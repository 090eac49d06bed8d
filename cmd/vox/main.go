// Command vox runs the voice assistant.
package main

func main() {
	Execute()
}
