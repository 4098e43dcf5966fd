// SPDX-License-Identifier: MIT

package mtfield

// Version is the module release reported by the mtf command.
const Version = "0.3.0"
