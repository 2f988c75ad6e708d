// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bufio"
	"os"
	"path/filepath"
)

//CheckFileIsExist : check whether the file exists or not
func CheckFileIsExist(filename string) bool {
	var exist = true
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		exist = false
	}
	return exist
}

//WriteStringToFile : write content to file, 文件存在时覆盖
func WriteStringToFile(file, content string) (writeLen int, err error) {
	if err = MakeDir(filepath.Dir(file)); err != nil {
		return
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	writeLen, err = w.WriteString(content)
	if err != nil {
		return
	}
	err = w.Flush()
	return
}
